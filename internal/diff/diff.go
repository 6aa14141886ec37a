// Package diff computes the structural difference between two package collections.
package diff

import (
	"sort"

	"github.com/masmgr/brdiff/internal/pkginfo"
)

// Kind represents the type of change of a package between two collections.
type Kind int

const (
	KindAdded Kind = iota
	KindRemoved
	KindChanged
)

// String returns a string representation of the change kind.
func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindChanged:
		return "modified"
	default:
		return "unknown"
	}
}

// Marker returns the report marker used for the change kind.
func (k Kind) Marker() string {
	switch k {
	case KindAdded:
		return "[+]"
	case KindRemoved:
		return "[-]"
	case KindChanged:
		return "[*]"
	default:
		return "[?]"
	}
}

// HistoryRecord is one upstream commit explaining a package change.
type HistoryRecord struct {
	Summary string
	Author  string
	ID      string
	// Reversed is set when the commit was found walking from the first version
	// towards the second one, i.e. the stated direction was backwards.
	Reversed bool
}

// Entry is one package that differs between the collections.
// Added and Removed entries carry Package; Changed entries carry First and Second.
type Entry struct {
	Kind    Kind
	Package pkginfo.Package
	First   pkginfo.Package
	Second  pkginfo.Package

	// History is only meaningful when HasHistory is true. Absent history means
	// the package has no git source or its reconciliation failed.
	History    []HistoryRecord
	HasHistory bool
}

// Name returns the package name of the entry.
func (e *Entry) Name() string {
	if e.Kind == KindChanged {
		return e.Second.Name
	}
	return e.Package.Name
}

// VersionChanged returns true if both versions are present and differ.
func (e *Entry) VersionChanged() bool {
	if e.Kind != KindChanged {
		return false
	}
	return e.First.HasVersion() && e.Second.HasVersion() && e.First.Version != e.Second.Version
}

// SourcesChanged returns true if a changed package also changed its source list.
func (e *Entry) SourcesChanged() bool {
	return e.Kind == KindChanged && !e.First.SourcesEqual(e.Second)
}

// AppendHistory attaches records to the entry, creating the history if absent.
func (e *Entry) AppendHistory(records ...HistoryRecord) {
	if e.History == nil {
		e.History = make([]HistoryRecord, 0, len(records))
	}
	e.History = append(e.History, records...)
	e.HasHistory = true
}

// Result maps package names to their diff entry.
type Result map[string]*Entry

// Sorted returns the entries ordered by package name.
func (r Result) Sorted() []*Entry {
	entries := make([]*Entry, 0, len(r))
	for _, e := range r {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}

// Count returns the number of entries of the given kind.
func (r Result) Count(kind Kind) int {
	n := 0
	for _, e := range r {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Build computes the difference between two collections.
// Packages equal by name and version in both collections produce no entry.
func Build(first, second pkginfo.Collection) Result {
	result := make(Result)

	for name, p1 := range first {
		p2, ok := second[name]
		if !ok {
			result[name] = &Entry{Kind: KindRemoved, Package: p1}
			continue
		}
		if !p1.Equal(p2) {
			result[name] = &Entry{Kind: KindChanged, First: p1, Second: p2}
		}
	}

	for name, p2 := range second {
		if _, ok := first[name]; !ok {
			result[name] = &Entry{Kind: KindAdded, Package: p2}
		}
	}

	return result
}
