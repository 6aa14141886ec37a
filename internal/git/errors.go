package git

import (
	"errors"
	"strings"
)

// ErrorKind classifies workspace and reconciler failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNameResolution means no local directory name could be derived from a URL.
	KindNameResolution
	// KindClone means the network or transport failed while cloning.
	KindClone
	// KindOpen means the local directory is not a valid repository.
	KindOpen
	// KindReferenceNotFound means a version string does not resolve to a commit.
	KindReferenceNotFound
	// KindRangeWalk means a commit range walk could not be set up or completed.
	KindRangeWalk
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNameResolution:
		return "name resolution"
	case KindClone:
		return "clone"
	case KindOpen:
		return "open"
	case KindReferenceNotFound:
		return "reference not found"
	case KindRangeWalk:
		return "range walk"
	default:
		return "unknown"
	}
}

// Error is returned by the workspace and the reconciler.
type Error struct {
	Kind ErrorKind
	URI  string
	Path string
	Ref  string
	Err  error
}

func (e *Error) Error() string {
	b := new(strings.Builder)
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	switch {
	case e.Ref != "":
		b.WriteString(" for ")
		b.WriteString(e.Ref)
	case e.URI != "":
		b.WriteString(" for ")
		b.WriteString(e.URI)
	case e.Path != "":
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return gitErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return gitErr.Kind
	}
	return KindUnknown
}
