// Package forward moves package recipes to newer upstream revisions.
package forward

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/masmgr/brdiff/internal/git"
	"github.com/masmgr/brdiff/internal/logging"
	"github.com/masmgr/brdiff/internal/pkginfo"
)

// DefaultBranch is the reference followed when no tag is requested.
const DefaultBranch = "origin/master"

// ErrConflictingFilters is returned when both an allow and a deny list are set.
var ErrConflictingFilters = errors.New("skip and direct lists are mutually exclusive")

var (
	errNoLocation = errors.New("package has no recipe location")
	errNoVersion  = errors.New("package has no version")
)

// Options configures a forward run.
type Options struct {
	Branch string   // followed when Tag is empty
	Tag    string   // exact tag or semver constraint
	Abbrev int      // hex digits of the new version; 0 keeps the full hash
	Allow  []string // only these package globs
	Deny   []string // never these package globs
	Limit  int      // stop after this many forwarded packages; 0 means no limit
	DryRun bool     // print the edits instead of applying them
}

// Status is the per-package result of a forward run.
type Status int

const (
	StatusForwarded Status = iota
	StatusUnchanged
	StatusFiltered
	StatusNoSource
	StatusSkipped
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusForwarded:
		return "forwarded"
	case StatusUnchanged:
		return "unchanged"
	case StatusFiltered:
		return "filtered"
	case StatusNoSource:
		return "no-source"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one package.
type Outcome struct {
	Name   string
	Status Status
	From   string
	To     string
	Err    error
}

// Result lists the outcomes of a run in processing order.
type Result struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Forwarder rewrites recipe versions to the tip of a branch or a tag.
type Forwarder struct {
	provider git.RepositoryProvider
	resolver git.RevisionResolver
	opts     Options
	out      io.Writer
	logger   *log.Logger
}

// New creates a Forwarder. Dry-run diffs are written to out.
func New(provider git.RepositoryProvider, resolver git.RevisionResolver, opts Options, out io.Writer, logger *log.Logger) (*Forwarder, error) {
	if len(opts.Allow) > 0 && len(opts.Deny) > 0 {
		return nil, ErrConflictingFilters
	}
	if opts.Tag == "" && opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	if out == nil {
		out = io.Discard
	}
	return &Forwarder{
		provider: provider,
		resolver: resolver,
		opts:     opts,
		out:      out,
		logger:   logging.Component(logger, "forward"),
	}, nil
}

// Run processes the packages of c in name order.
func (f *Forwarder) Run(ctx context.Context, c pkginfo.Collection) (*Result, error) {
	result := &Result{}
	forwarded := 0
	for _, name := range c.Names() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if f.opts.Limit > 0 && forwarded >= f.opts.Limit {
			f.logger.Info("limit of forwarded packages reached", "limit", f.opts.Limit)
			break
		}

		o := f.forward(ctx, c[name])
		if o.Status == StatusForwarded {
			forwarded++
		}
		result.Outcomes = append(result.Outcomes, o)
	}
	return result, nil
}

func (f *Forwarder) forward(ctx context.Context, pkg pkginfo.Package) Outcome {
	o := Outcome{Name: pkg.Name, From: pkg.Version}

	if !pkginfo.MatchesFilters(pkg.Name, f.opts.Allow, f.opts.Deny) {
		f.logger.Debug("filtered", "package", pkg.Name)
		o.Status = StatusFiltered
		return o
	}
	uri, ok := pkg.GitSource()
	if !ok {
		f.logger.Debug("not a git package", "package", pkg.Name)
		o.Status = StatusNoSource
		return o
	}
	if !pkg.HasVersion() {
		return f.skip(o, errNoVersion)
	}
	if pkg.Location == "" {
		return f.skip(o, errNoLocation)
	}

	repo, err := f.provider.Obtain(ctx, uri)
	if err != nil {
		return f.skip(o, err)
	}
	o.To, err = f.newVersion(repo)
	if err != nil {
		return f.skip(o, err)
	}
	if o.To == o.From {
		o.Status = StatusUnchanged
		return o
	}

	if f.opts.DryRun {
		patch, err := PreviewReplace(pkg.Location, o.From, o.To)
		if err != nil {
			return f.skip(o, err)
		}
		if _, err := io.WriteString(f.out, patch); err != nil {
			return f.skip(o, err)
		}
	} else if err := ReplaceVersion(pkg.Location, o.From, o.To); err != nil {
		return f.skip(o, err)
	}

	f.logger.Info("forwarded", "package", pkg.Name, "from", o.From, "to", o.To)
	o.Status = StatusForwarded
	return o
}

// newVersion resolves the configured tag or branch to the commit id written
// into the recipe.
func (f *Forwarder) newVersion(repo *git.Repository) (string, error) {
	if f.opts.Tag != "" {
		tags, err := f.resolver.Tags(repo)
		if err != nil {
			return "", err
		}
		tag, err := selectTag(f.opts.Tag, tags)
		if err != nil {
			return "", err
		}
		hash, err := f.resolver.Resolve(repo, tag)
		if err != nil {
			return "", err
		}
		return git.Abbrev(hash, f.opts.Abbrev), nil
	}

	hash, err := f.resolver.Resolve(repo, f.opts.Branch)
	if err != nil {
		return "", fmt.Errorf("latest commit on %s: %w", f.opts.Branch, err)
	}
	return git.Abbrev(hash, f.opts.Abbrev), nil
}

func (f *Forwarder) skip(o Outcome, err error) Outcome {
	f.logger.Warn("cannot forward", "package", o.Name, "err", err)
	o.Status = StatusSkipped
	o.Err = err
	return o
}
