package pkginfo

import "testing"

func TestParseSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind SourceKind
		wantURI  string
	}{
		{
			name:     "Git",
			input:    "git+git@github.com:rust-lang/rust.git",
			wantKind: SourceGit,
			wantURI:  "git@github.com:rust-lang/rust.git",
		},
		{
			name:     "Archive",
			input:    "https+https://snapshot.debian.org/archive/debian/20201008T205817Z/pool/main/f/fakeroot",
			wantKind: SourceArchive,
			wantURI:  "https://snapshot.debian.org/archive/debian/20201008T205817Z/pool/main/f/fakeroot",
		},
		{
			name:     "Other keeps original string",
			input:    "local+/tmp/build/custom/super-package",
			wantKind: SourceOther,
			wantURI:  "local+/tmp/build/custom/super-package",
		},
		{
			name:     "Plain URL is other",
			input:    "https://example.org/x.tar.gz",
			wantKind: SourceOther,
			wantURI:  "https://example.org/x.tar.gz",
		},
		{
			name:     "Archive wins over embedded git prefix",
			input:    "https+https://example.org/git+repo",
			wantKind: SourceArchive,
			wantURI:  "https://example.org/git+repo",
		},
		{name: "Empty", input: "", wantKind: SourceOther, wantURI: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSource(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("ParseSource(%q).Kind = %v, want %v", tt.input, got.Kind, tt.wantKind)
			}
			if got.URI != tt.wantURI {
				t.Errorf("ParseSource(%q).URI = %q, want %q", tt.input, got.URI, tt.wantURI)
			}
		})
	}
}

func TestSourceKind_String(t *testing.T) {
	tests := []struct {
		kind     SourceKind
		expected string
	}{
		{SourceGit, "git"},
		{SourceArchive, "archive"},
		{SourceOther, "other"},
		{SourceKind(42), "other"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestPackage_Equal(t *testing.T) {
	git := []Source{{Kind: SourceGit, URI: "git@host:org/a.git"}}
	other := []Source{{Kind: SourceOther, URI: "file:///a"}}

	tests := []struct {
		name string
		a, b Package
		want bool
	}{
		{
			name: "Same name and version",
			a:    Package{Name: "a", Version: "1"},
			b:    Package{Name: "a", Version: "1"},
			want: true,
		},
		{
			name: "Different sources are still equal",
			a:    Package{Name: "a", Version: "1", Sources: git},
			b:    Package{Name: "a", Version: "1", Sources: other},
			want: true,
		},
		{
			name: "Different location is still equal",
			a:    Package{Name: "a", Version: "1", Location: "x/a.mk"},
			b:    Package{Name: "a", Version: "1", Location: "y/a.mk"},
			want: true,
		},
		{
			name: "Different version",
			a:    Package{Name: "a", Version: "1"},
			b:    Package{Name: "a", Version: "2"},
			want: false,
		},
		{
			name: "Missing version on one side",
			a:    Package{Name: "a"},
			b:    Package{Name: "a", Version: "2"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPackage_SourcesEqual(t *testing.T) {
	a := Package{Name: "a", Sources: []Source{ParseSource("git+x.git"), ParseSource("https+y")}}
	b := Package{Name: "a", Sources: []Source{ParseSource("git+x.git"), ParseSource("https+y")}}
	c := Package{Name: "a", Sources: []Source{ParseSource("https+y"), ParseSource("git+x.git")}}

	if !a.SourcesEqual(b) {
		t.Error("expected identical source lists to be equal")
	}
	if a.SourcesEqual(c) {
		t.Error("expected reordered source lists to differ")
	}
}

func TestPackage_GitSource(t *testing.T) {
	p := Package{
		Name: "a",
		Sources: []Source{
			ParseSource("https+https://example.org/a.tar.gz"),
			ParseSource("git+git@host:org/first.git"),
			ParseSource("git+git@host:org/second.git"),
		},
	}

	uri, ok := p.GitSource()
	if !ok {
		t.Fatal("expected a git source")
	}
	if uri != "git@host:org/first.git" {
		t.Errorf("GitSource() = %q, want first git source", uri)
	}

	if _, ok := (Package{Name: "b"}).GitSource(); ok {
		t.Error("expected no git source for a package without sources")
	}
}

func TestCollection_Filter(t *testing.T) {
	c := Collection{}
	for _, name := range []string{"boost", "busybox", "linux", "linux-firmware", "qt5base"} {
		c.Add(Package{Name: name, Version: "1"})
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{name: "No filters", want: []string{"boost", "busybox", "linux", "linux-firmware", "qt5base"}},
		{name: "Include glob", include: []string{"linux*"}, want: []string{"linux", "linux-firmware"}},
		{name: "Exclude glob", exclude: []string{"b*"}, want: []string{"linux", "linux-firmware", "qt5base"}},
		{name: "Exclude wins", include: []string{"linux*"}, exclude: []string{"*firmware"}, want: []string{"linux"}},
		{name: "Nothing matches", include: []string{"gcc"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.include, tt.exclude).Names()
			if len(got) != len(tt.want) {
				t.Fatalf("Filter() names = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter() names[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
