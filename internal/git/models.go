package git

import (
	"strings"
	"time"
)

// CommitInfo represents one commit of a reconciled range.
type CommitInfo struct {
	SHA      string
	When     time.Time
	Author   AuthorInfo
	Summary  string
	Reversed bool
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// String returns the author in "Name <email>" form.
func (a AuthorInfo) String() string {
	if a.Email == "" {
		return a.Name
	}
	return a.Name + " <" + a.Email + ">"
}

// summaryLine returns the first line of a commit message.
func summaryLine(message string) string {
	message = strings.TrimLeft(message, "\n")
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}

// WorkspaceOptions configures the repository workspace.
type WorkspaceOptions struct {
	Dir          string // directory holding the cached clones
	KeyPath      string // private key for ssh clones; empty uses the ssh agent
	Clean        bool   // remove Dir before use
	ShortHistory bool   // follow first parents only
}
