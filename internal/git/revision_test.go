package git

import (
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/go-cmp/cmp"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		first  string
		second string
		errMsg string
	}{
		{name: "Two dot", spec: "v1.0..v1.1", first: "v1.0", second: "v1.1"},
		{name: "Three dot", spec: "origin/master...v2", first: "origin/master", second: "v2"},
		{name: "Empty second", spec: "v1.0..", first: "v1.0", second: "HEAD"},
		{name: "Surrounding space", spec: "  a..b  ", first: "a", second: "b"},
		{name: "Empty first", spec: "..v2", errMsg: "missing first version"},
		{name: "No dots", spec: "v1.0", errMsg: "expected 'first..second'"},
		{name: "Empty", spec: "", errMsg: "empty range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, err := ParseRange(tt.spec)
			if tt.errMsg != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %q, expected to contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if first != tt.first || second != tt.second {
				t.Errorf("ParseRange(%q) = (%q, %q), expected (%q, %q)", tt.spec, first, second, tt.first, tt.second)
			}
		})
	}
}

func TestAbbrev(t *testing.T) {
	hash := plumbing.NewHash("0123456789abcdef0123456789abcdef01234567")

	tests := []struct {
		n        int
		expected string
	}{
		{n: 7, expected: "0123456"},
		{n: 12, expected: "0123456789ab"},
		{n: 0, expected: hash.String()},
		{n: -1, expected: hash.String()},
		{n: 40, expected: hash.String()},
		{n: 99, expected: hash.String()},
	}

	for _, tt := range tests {
		if got := Abbrev(hash, tt.n); got != tt.expected {
			t.Errorf("Abbrev(%d) = %q, expected %q", tt.n, got, tt.expected)
		}
	}
}

func TestTags(t *testing.T) {
	r := newTestRepo(t, t.TempDir())
	first := r.commit("initial")
	second := r.commit("second")
	r.tag("v1.10.0", second)
	r.tag("v1.2.0", first)
	r.annotatedTag("v1.9.0", second)

	tags, err := Tags(r.handle())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if diff := cmp.Diff([]string{"v1.10.0", "v1.2.0", "v1.9.0"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}
