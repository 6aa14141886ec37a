package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ParseRange splits a "first..second" or "first...second" range.
// An empty second side defaults to HEAD.
func ParseRange(spec string) (first, second string, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", fmt.Errorf("empty range")
	}

	if idx := strings.Index(spec, "..."); idx != -1 {
		first = spec[:idx]
		second = spec[idx+3:]
	} else if idx := strings.Index(spec, ".."); idx != -1 {
		first = spec[:idx]
		second = spec[idx+2:]
	} else {
		return "", "", fmt.Errorf("invalid range %q: expected 'first..second'", spec)
	}

	if first == "" {
		return "", "", fmt.Errorf("invalid range %q: missing first version", spec)
	}
	if second == "" {
		second = "HEAD"
	}

	return first, second, nil
}

// Tags returns the tag names of repo in lexical order.
func Tags(repo *Repository) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	iter, err := repo.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", repo.Path, err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", repo.Path, err)
	}
	sort.Strings(names)
	return names, nil
}

// Abbrev shortens a commit hash to n hex characters. Non-positive n or n
// beyond the hash length returns the full hash.
func Abbrev(hash plumbing.Hash, n int) string {
	s := hash.String()
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

// Tags returns the tag names of repo in lexical order.
func (r *Reconciler) Tags(repo *Repository) ([]string, error) {
	return Tags(repo)
}
