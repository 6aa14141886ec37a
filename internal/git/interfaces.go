package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
)

// RepositoryProvider hands out local clones of upstream repositories.
type RepositoryProvider interface {
	Obtain(ctx context.Context, uri string) (*Repository, error)
}

// HistoryBuilder lists the commits separating two versions of a repository.
type HistoryBuilder interface {
	History(ctx context.Context, repo *Repository, first, second string) ([]CommitInfo, error)
}

// RevisionResolver looks up tags and turns references into commits.
type RevisionResolver interface {
	Resolve(repo *Repository, ref string) (plumbing.Hash, error)
	Tags(repo *Repository) ([]string, error)
}

// Compile-time interface conformance checks.
var (
	_ RepositoryProvider = (*Workspace)(nil)
	_ HistoryBuilder     = (*Reconciler)(nil)
	_ RevisionResolver   = (*Reconciler)(nil)
)
