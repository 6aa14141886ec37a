package git

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/masmgr/brdiff/internal/logging"
)

// Reconciler lists the commits that separate two versions of a repository.
type Reconciler struct {
	shortHistory bool
	logger       *log.Logger
}

// NewReconciler creates a reconciler. With shortHistory set, walks follow
// first parents only.
func NewReconciler(shortHistory bool, logger *log.Logger) *Reconciler {
	return &Reconciler{
		shortHistory: shortHistory,
		logger:       logging.Component(logger, "history"),
	}
}

// Resolve turns a tag, branch or commit id into a commit hash.
func (r *Reconciler) Resolve(repo *Repository, ref string) (plumbing.Hash, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return resolve(repo, ref)
}

func resolve(repo *Repository, ref string) (plumbing.Hash, error) {
	hash, err := repo.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, &Error{Kind: KindReferenceNotFound, Path: repo.Path, Ref: ref, Err: err}
	}
	return *hash, nil
}

// History returns the commits reachable from second but not from first,
// newest first. When that range is empty the reverse range is returned
// with every record marked Reversed. The result is never nil on success.
func (r *Reconciler) History(ctx context.Context, repo *Repository, first, second string) ([]CommitInfo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	firstHash, err := resolve(repo, first)
	if err != nil {
		return nil, err
	}
	secondHash, err := resolve(repo, second)
	if err != nil {
		return nil, err
	}

	commits, err := r.walk(ctx, repo, secondHash, firstHash)
	if err != nil {
		return nil, err
	}
	if len(commits) > 0 {
		r.logger.Debug("forward range", "path", repo.Path, "first", first, "second", second, "commits", len(commits))
		return commits, nil
	}

	commits, err = r.walk(ctx, repo, firstHash, secondHash)
	if err != nil {
		return nil, err
	}
	for i := range commits {
		commits[i].Reversed = true
	}
	r.logger.Debug("reverse range", "path", repo.Path, "first", first, "second", second, "commits", len(commits))
	return commits, nil
}

// walk lists commits reachable from tip that are not ancestors of hide.
func (r *Reconciler) walk(ctx context.Context, repo *Repository, tip, hide plumbing.Hash) ([]CommitInfo, error) {
	walkErr := func(err error) error {
		return &Error{Kind: KindRangeWalk, Path: repo.Path, Ref: tip.String(), Err: err}
	}

	tipCommit, err := repo.repo.CommitObject(tip)
	if err != nil {
		return nil, walkErr(err)
	}
	hideCommit, err := repo.repo.CommitObject(hide)
	if err != nil {
		return nil, walkErr(err)
	}

	hidden, err := ancestors(ctx, hideCommit)
	if err != nil {
		return nil, walkErr(err)
	}

	commits := make([]CommitInfo, 0)
	if hidden[tip] {
		return commits, nil
	}

	if r.shortHistory {
		c := tipCommit
		for !hidden[c.Hash] {
			if err := ctx.Err(); err != nil {
				return nil, walkErr(err)
			}
			commits = append(commits, newCommitInfo(c))
			if c.NumParents() == 0 {
				break
			}
			if c, err = c.Parent(0); err != nil {
				return nil, walkErr(err)
			}
		}
		return commits, nil
	}

	iter := object.NewCommitIterCTime(tipCommit, hidden, nil)
	defer iter.Close()
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, newCommitInfo(c))
		return nil
	})
	if err != nil {
		return nil, walkErr(err)
	}
	return commits, nil
}

// ancestors returns the set of commits reachable from c, c included.
func ancestors(ctx context.Context, c *object.Commit) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(c, nil, nil)
	defer iter.Close()
	err := iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return seen, nil
}

func newCommitInfo(c *object.Commit) CommitInfo {
	return CommitInfo{
		SHA:     c.Hash.String(),
		When:    c.Committer.When,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Summary: summaryLine(c.Message),
	}
}
