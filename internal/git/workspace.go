package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/masmgr/brdiff/internal/logging"
)

// Repository is a cached local clone of an upstream repository.
// Walks over the same clone are serialised through its mutex.
type Repository struct {
	Path string
	URL  string

	repo *gogit.Repository
	mu   sync.Mutex
}

// NewRepository wraps an already opened go-git repository.
func NewRepository(path, url string, repo *gogit.Repository) *Repository {
	return &Repository{Path: path, URL: url, repo: repo}
}

// Workspace manages the directory of cached upstream clones.
type Workspace struct {
	opts   WorkspaceOptions
	logger *log.Logger

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	mu   sync.Mutex
	repo *Repository
}

// NewWorkspace creates a workspace rooted at opts.Dir.
func NewWorkspace(opts WorkspaceOptions, logger *log.Logger) *Workspace {
	return &Workspace{
		opts:   opts,
		logger: logging.Component(logger, "workspace"),
		slots:  make(map[string]*slot),
	}
}

// Dir returns the workspace root directory.
func (w *Workspace) Dir() string {
	return w.opts.Dir
}

// Init prepares the workspace directory, wiping it first when Clean is set.
func (w *Workspace) Init() error {
	if w.opts.Dir == "" {
		return errors.New("workspace directory is not set")
	}
	if w.opts.Clean {
		w.logger.Info("cleaning workspace", "dir", w.opts.Dir)
		if err := os.RemoveAll(w.opts.Dir); err != nil {
			return fmt.Errorf("failed to clean workspace %s: %w", w.opts.Dir, err)
		}
	}
	if err := os.MkdirAll(w.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", w.opts.Dir, err)
	}
	return nil
}

// RepoName derives the local directory name of an upstream URL: the last
// "/"-separated segment with its ".git" suffix removed.
func RepoName(uri string) (string, error) {
	nameErr := func(reason string) error {
		return &Error{Kind: KindNameResolution, URI: uri, Err: errors.New(reason)}
	}
	if !strings.HasSuffix(uri, ".git") {
		return "", nameErr("url does not end in .git")
	}
	segments := strings.Split(uri, "/")
	if len(segments) < 2 {
		return "", nameErr("url has no path segment")
	}
	name := strings.TrimSuffix(segments[len(segments)-1], ".git")
	if name == "" {
		return "", nameErr("empty repository name")
	}
	return name, nil
}

// Obtain returns the local clone for uri, cloning it on first use. Concurrent
// callers for the same derived path wait for a single clone-or-open.
func (w *Workspace) Obtain(ctx context.Context, uri string) (*Repository, error) {
	name, err := RepoName(uri)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(w.opts.Dir, name)

	s := w.slot(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		return s.repo, nil
	}

	var repo *gogit.Repository
	_, statErr := os.Stat(path)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		repo, err = w.clone(ctx, uri, path)
	case statErr != nil:
		err = &Error{Kind: KindOpen, Path: path, Err: statErr}
	default:
		repo, err = w.open(path)
	}
	if err != nil {
		return nil, err
	}

	s.repo = NewRepository(path, uri, repo)
	return s.repo, nil
}

func (w *Workspace) slot(path string) *slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.slots[path]
	if !ok {
		s = &slot{}
		w.slots[path] = s
	}
	return s
}

func (w *Workspace) clone(ctx context.Context, uri, path string) (*gogit.Repository, error) {
	auth, err := w.auth(uri)
	if err != nil {
		return nil, &Error{Kind: KindClone, URI: uri, Err: err}
	}

	w.logger.Info("cloning", "url", uri, "path", path)
	repo, err := gogit.PlainCloneContext(ctx, path, false, &gogit.CloneOptions{
		URL:  uri,
		Auth: auth,
	})
	if err != nil {
		if rmErr := os.RemoveAll(path); rmErr != nil {
			w.logger.Warn("failed to remove partial clone", "path", path, "err", rmErr)
		}
		return nil, &Error{Kind: KindClone, URI: uri, Err: err}
	}
	return repo, nil
}

func (w *Workspace) open(path string) (*gogit.Repository, error) {
	w.logger.Debug("opening", "path", path)
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, &Error{Kind: KindOpen, Path: path, Err: err}
	}
	return repo, nil
}

// auth returns key based credentials for ssh endpoints. A nil method lets
// go-git fall back to the ssh agent or anonymous access.
func (w *Workspace) auth(uri string) (transport.AuthMethod, error) {
	if w.opts.KeyPath == "" {
		return nil, nil
	}
	ep, err := transport.NewEndpoint(uri)
	if err != nil {
		return nil, err
	}
	if ep.Protocol != "ssh" {
		return nil, nil
	}
	user := ep.User
	if user == "" {
		user = "git"
	}
	keys, err := ssh.NewPublicKeysFromFile(user, w.opts.KeyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load ssh key %s: %w", w.opts.KeyPath, err)
	}
	return keys, nil
}
