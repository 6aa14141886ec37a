package pkginfo

import (
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SourceKind identifies how a package source is fetched.
type SourceKind int

const (
	SourceOther SourceKind = iota
	SourceGit
	SourceArchive
)

// String returns a string representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceGit:
		return "git"
	case SourceArchive:
		return "archive"
	default:
		return "other"
	}
}

const (
	archivePrefix = "https+"
	gitPrefix     = "git+"
)

// Source is one declared download location of a package.
type Source struct {
	Kind SourceKind
	URI  string
}

// ParseSource parses a scheme-prefixed source string.
// "https+" is checked before "git+"; anything else is kept verbatim as SourceOther.
func ParseSource(s string) Source {
	switch {
	case strings.HasPrefix(s, archivePrefix):
		return Source{Kind: SourceArchive, URI: strings.TrimPrefix(s, archivePrefix)}
	case strings.HasPrefix(s, gitPrefix):
		return Source{Kind: SourceGit, URI: strings.TrimPrefix(s, gitPrefix)}
	default:
		return Source{Kind: SourceOther, URI: s}
	}
}

// Package is a read-only snapshot of one package.
// An empty Version or Location means the value is absent.
type Package struct {
	Name     string
	Version  string
	Sources  []Source
	Location string // recipe file the package was read from
}

// Equal reports whether two packages are the same for diffing purposes.
// Only name and version take part; source lists are compared separately.
func (p Package) Equal(other Package) bool {
	return p.Name == other.Name && p.Version == other.Version
}

// SourcesEqual reports whether both packages declare the same sources in the same order.
func (p Package) SourcesEqual(other Package) bool {
	return slices.Equal(p.Sources, other.Sources)
}

// HasVersion returns true if the package declares a version.
func (p Package) HasVersion() bool {
	return p.Version != ""
}

// GitSource returns the first git source of the package.
func (p Package) GitSource() (string, bool) {
	for _, s := range p.Sources {
		if s.Kind == SourceGit {
			return s.URI, true
		}
	}
	return "", false
}

// Collection maps package names to packages.
type Collection map[string]Package

// Add inserts the package keyed by its name, replacing any previous entry.
func (c Collection) Add(p Package) {
	c[p.Name] = p
}

// Names returns the package names in lexical order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filter returns the packages whose names pass the include/exclude glob patterns.
// Exclude patterns win; an empty include list accepts every name.
func (c Collection) Filter(include, exclude []string) Collection {
	if len(include) == 0 && len(exclude) == 0 {
		return c
	}
	out := make(Collection, len(c))
	for name, p := range c {
		if MatchesFilters(name, include, exclude) {
			out[name] = p
		}
	}
	return out
}

// MatchesFilters checks if a package name matches the include/exclude patterns.
func MatchesFilters(name string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return false
		}
	}

	if len(include) == 0 {
		return true
	}

	for _, pattern := range include {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}

	return false
}

// Reader produces a package collection from some external representation.
type Reader interface {
	Read() (Collection, error)
}
