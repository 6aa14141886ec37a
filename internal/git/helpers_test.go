package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a go-git repository built commit by commit in a temp dir.
type testRepo struct {
	tb   testing.TB
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	now  time.Time
	tick int
}

func newTestRepo(tb testing.TB, dir string) *testRepo {
	tb.Helper()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &testRepo{
		tb:   tb,
		dir:  dir,
		repo: repo,
		wt:   wt,
		now:  time.Now().Add(-1000 * time.Hour),
	}
}

func (r *testRepo) write(rel, content string) {
	r.tb.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

func (r *testRepo) signature() *object.Signature {
	r.tick++
	return &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  r.now.Add(time.Duration(r.tick) * time.Minute),
	}
}

// commit writes a file named after msg and commits it.
func (r *testRepo) commit(msg string, parents ...plumbing.Hash) plumbing.Hash {
	r.tb.Helper()
	r.write(msg+".txt", msg+"\n")
	sig := r.signature()
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.tb.Helper()
	if _, err := r.repo.CreateTag(name, hash, nil); err != nil {
		r.tb.Fatalf("CreateTag(%s): %v", name, err)
	}
}

func (r *testRepo) annotatedTag(name string, hash plumbing.Hash) {
	r.tb.Helper()
	_, err := r.repo.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release " + name,
	})
	if err != nil {
		r.tb.Fatalf("CreateTag(%s): %v", name, err)
	}
}

func (r *testRepo) checkout(branch string, create bool) {
	r.tb.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.tb.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (r *testRepo) head() plumbing.ReferenceName {
	r.tb.Helper()
	ref, err := r.repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	return ref.Name()
}

func (r *testRepo) handle() *Repository {
	return NewRepository(r.dir, "file://"+r.dir, r.repo)
}

func summaries(commits []CommitInfo) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Summary
	}
	return out
}
