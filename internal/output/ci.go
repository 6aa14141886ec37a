package output

import (
	"github.com/masmgr/brdiff/internal/diff"
)

// CIDiffWriter writes diff reports as NDJSON (one JSON object per line) for CI pipelines.
type CIDiffWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type     string `json:"type"`
	Added    int    `json:"added"`
	Removed  int    `json:"removed"`
	Modified int    `json:"modified"`
	Enriched int    `json:"enriched"`
	Skipped  int    `json:"skipped"`
}

// CIPackageEntry represents a single package in CI output.
type CIPackageEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Commits  *int   `json:"commits,omitempty"`
	Reversed bool   `json:"reversed,omitempty"`
	Fixes    *int   `json:"fixes,omitempty"`
}

// CISkipEntry names a package whose history could not be produced.
type CISkipEntry struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Write outputs the diff report as NDJSON.
func (w *CIDiffWriter) Write(report *DiffReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:     "summary",
		Added:    report.Count(diff.KindAdded),
		Removed:  report.Count(diff.KindRemoved),
		Modified: report.Count(diff.KindChanged),
	}
	if e := report.Enrichment; e != nil {
		summary.Enriched = e.Enriched
		summary.Skipped = len(e.Skipped)
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, e := range report.Entries {
		from, to := versions(e)
		entry := CIPackageEntry{
			Type:     "package",
			Name:     e.Name(),
			Kind:     e.Kind.String(),
			From:     from,
			To:       to,
			Reversed: reversed(e),
		}
		if e.HasHistory {
			n := len(e.History)
			entry.Commits = &n
		}
		if options.ShowFixes && report.Fixes != nil && e.Kind == diff.KindChanged {
			gained, _ := report.Fixes.Fixes(e.Name())
			entry.Fixes = &gained
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	if e := report.Enrichment; e != nil {
		for _, s := range e.Skipped {
			if err := writeNDJSONLine(out, CISkipEntry{Type: "skip", Name: s.Name, Reason: errString(s.Err)}); err != nil {
				return err
			}
		}
	}

	return nil
}
