package git

import "testing"

func TestAuthorInfo_String(t *testing.T) {
	tests := []struct {
		name     string
		author   AuthorInfo
		expected string
	}{
		{name: "Name and email", author: AuthorInfo{Name: "Jane Doe", Email: "jane@example.com"}, expected: "Jane Doe <jane@example.com>"},
		{name: "Name only", author: AuthorInfo{Name: "Jane Doe"}, expected: "Jane Doe"},
		{name: "Empty", author: AuthorInfo{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.author.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "Single line", message: "fix build", expected: "fix build"},
		{name: "Multi line", message: "fix build\n\nlong body\n", expected: "fix build"},
		{name: "Leading newline", message: "\nsubject\nbody", expected: "subject"},
		{name: "Trailing spaces", message: "subject   \n", expected: "subject"},
		{name: "Empty", message: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryLine(tt.message); got != tt.expected {
				t.Errorf("summaryLine(%q) = %q, expected %q", tt.message, got, tt.expected)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindNameResolution, "name resolution"},
		{KindClone, "clone"},
		{KindOpen, "open"},
		{KindReferenceNotFound, "reference not found"},
		{KindRangeWalk, "range walk"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}
