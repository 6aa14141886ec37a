// Package enrich attaches upstream commit history to changed packages.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/git"
	"github.com/masmgr/brdiff/internal/logging"
)

// ErrMissingVersion is the skip reason for a changed package whose first or
// second snapshot has no version.
var ErrMissingVersion = errors.New("missing version")

// Options configures the enrichment pass.
type Options struct {
	Jobs int // packages processed concurrently; values below 1 mean 1
}

// Status is the per-package result of the pass.
type Status int

const (
	StatusEnriched Status = iota
	StatusNoSource
	StatusSkipped
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusEnriched:
		return "enriched"
	case StatusNoSource:
		return "no-source"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one changed package.
type Outcome struct {
	Name    string
	Status  Status
	Records []diff.HistoryRecord
	Err     error
}

// Skip names a package whose history could not be produced.
type Skip struct {
	Name string
	Err  error
}

// Report summarises an enrichment pass.
type Report struct {
	Changed  int
	Enriched int
	NoSource int
	Skipped  []Skip
}

func (r *Report) add(o Outcome) {
	switch o.Status {
	case StatusEnriched:
		r.Enriched++
	case StatusNoSource:
		r.NoSource++
	case StatusSkipped:
		r.Skipped = append(r.Skipped, Skip{Name: o.Name, Err: o.Err})
	}
}

// Enricher walks the changed entries of a diff and fills in their history.
type Enricher struct {
	provider git.RepositoryProvider
	builder  git.HistoryBuilder
	opts     Options
	logger   *log.Logger
}

// New creates an Enricher.
func New(provider git.RepositoryProvider, builder git.HistoryBuilder, opts Options, logger *log.Logger) *Enricher {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Enricher{
		provider: provider,
		builder:  builder,
		opts:     opts,
		logger:   logging.Component(logger, "enrich"),
	}
}

// Enrich appends history to every changed entry of result it can. Failures
// are confined to the package they occur in and reported; the entry keeps
// its history absent.
func (e *Enricher) Enrich(ctx context.Context, result diff.Result) *Report {
	entries := make([]*diff.Entry, 0, len(result))
	for _, entry := range result {
		if entry.Kind == diff.KindChanged {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	outcomes := make([]Outcome, len(entries))
	var g errgroup.Group
	g.SetLimit(e.opts.Jobs)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			outcomes[i] = e.process(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Changed: len(entries)}
	for i, o := range outcomes {
		if o.Status == StatusEnriched {
			entries[i].AppendHistory(o.Records...)
		}
		report.add(o)
	}

	e.logger.Info("history done",
		"changed", report.Changed,
		"enriched", report.Enriched,
		"no_source", report.NoSource,
		"skipped", len(report.Skipped),
	)
	return report
}

func (e *Enricher) process(ctx context.Context, entry *diff.Entry) Outcome {
	name := entry.Name()

	uri, ok := entry.Second.GitSource()
	if !ok {
		return Outcome{Name: name, Status: StatusNoSource}
	}
	if !entry.First.HasVersion() || !entry.Second.HasVersion() {
		return e.skip(name, ErrMissingVersion)
	}

	repo, err := e.provider.Obtain(ctx, uri)
	if err != nil {
		return e.skip(name, err)
	}

	commits, err := e.builder.History(ctx, repo, entry.First.Version, entry.Second.Version)
	if err != nil {
		return e.skip(name, fmt.Errorf("%s..%s: %w", entry.First.Version, entry.Second.Version, err))
	}

	return Outcome{Name: name, Status: StatusEnriched, Records: Records(commits)}
}

func (e *Enricher) skip(name string, err error) Outcome {
	reason := err.Error()
	if kind := git.KindOf(err); kind != git.KindUnknown {
		reason = kind.String()
	}
	e.logger.Warn("no history", "package", name, "reason", reason)
	e.logger.Debug("history failure", "package", name, "err", err)
	return Outcome{Name: name, Status: StatusSkipped, Err: err}
}

// Records converts reconciler commits to diff history records.
func Records(commits []git.CommitInfo) []diff.HistoryRecord {
	records := make([]diff.HistoryRecord, len(commits))
	for i, c := range commits {
		records[i] = diff.HistoryRecord{
			Summary:  c.Summary,
			Author:   c.Author.String(),
			ID:       c.SHA,
			Reversed: c.Reversed,
		}
	}
	return records
}
