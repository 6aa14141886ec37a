package output

import (
	"github.com/masmgr/brdiff/internal/diff"
)

// JSONDiffWriter writes diff reports as JSON.
type JSONDiffWriter struct{}

// JSONDiffReport is the JSON output structure for a package diff.
type JSONDiffReport struct {
	First       string          `json:"first"`
	Second      string          `json:"second"`
	GeneratedAt string          `json:"generatedAt"`
	Summary     JSONDiffSummary `json:"summary"`
	Entries     []JSONDiffEntry `json:"entries"`
	Skipped     []JSONSkip      `json:"skipped,omitempty"`
}

// JSONDiffSummary holds the entry and history counts.
type JSONDiffSummary struct {
	Added    int  `json:"added"`
	Removed  int  `json:"removed"`
	Modified int  `json:"modified"`
	Enriched *int `json:"enriched,omitempty"`
	NoSource *int `json:"noSource,omitempty"`
	Fixes    *int `json:"fixes,omitempty"`
}

// JSONDiffEntry is the JSON output structure for a single package.
type JSONDiffEntry struct {
	Name           string              `json:"name"`
	Kind           string              `json:"kind"`
	From           string              `json:"from,omitempty"`
	To             string              `json:"to,omitempty"`
	SourcesChanged bool                `json:"sourcesChanged,omitempty"`
	HasHistory     bool                `json:"hasHistory"`
	History        []JSONHistoryRecord `json:"history,omitempty"`
	Fixes          *JSONFixes          `json:"fixes,omitempty"`
}

// JSONHistoryRecord is one upstream commit of a package.
type JSONHistoryRecord struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Author   string `json:"author"`
	Reversed bool   `json:"reversed,omitempty"`
}

// JSONFixes holds the fix counts of a package.
type JSONFixes struct {
	Gained int `json:"gained"`
	Lost   int `json:"lost"`
}

// JSONSkip names a package whose history could not be produced.
type JSONSkip struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Write outputs the diff report as JSON.
func (w *JSONDiffWriter) Write(report *DiffReport, options OutputOptions) error {
	entries := make([]JSONDiffEntry, len(report.Entries))
	for i, e := range report.Entries {
		from, to := versions(e)
		entry := JSONDiffEntry{
			Name:           e.Name(),
			Kind:           e.Kind.String(),
			From:           from,
			To:             to,
			SourcesChanged: e.SourcesChanged(),
			HasHistory:     e.HasHistory,
		}
		for _, rec := range e.History {
			entry.History = append(entry.History, JSONHistoryRecord{
				ID:       rec.ID,
				Summary:  rec.Summary,
				Author:   rec.Author,
				Reversed: rec.Reversed,
			})
		}
		if options.ShowFixes && report.Fixes != nil && e.Kind == diff.KindChanged {
			gained, lost := report.Fixes.Fixes(e.Name())
			entry.Fixes = &JSONFixes{Gained: gained, Lost: lost}
		}
		entries[i] = entry
	}

	jsonReport := JSONDiffReport{
		First:       report.First,
		Second:      report.Second,
		GeneratedAt: formatTime(report.GeneratedAt),
		Summary: JSONDiffSummary{
			Added:    report.Count(diff.KindAdded),
			Removed:  report.Count(diff.KindRemoved),
			Modified: report.Count(diff.KindChanged),
		},
		Entries: entries,
	}
	if e := report.Enrichment; e != nil {
		enriched, noSource := e.Enriched, e.NoSource
		jsonReport.Summary.Enriched = &enriched
		jsonReport.Summary.NoSource = &noSource
		for _, s := range e.Skipped {
			jsonReport.Skipped = append(jsonReport.Skipped, JSONSkip{Name: s.Name, Reason: errString(s.Err)})
		}
	}
	if options.ShowFixes && report.Fixes != nil {
		total := report.Fixes.TotalFixes
		jsonReport.Summary.Fixes = &total
	}

	return writeJSON(jsonReport, options.OutputPath)
}

// JSONForwardWriter writes forward reports as JSON.
type JSONForwardWriter struct{}

// JSONForwardReport is the JSON output structure for a forward run.
type JSONForwardReport struct {
	Input       string               `json:"input"`
	GeneratedAt string               `json:"generatedAt"`
	DryRun      bool                 `json:"dryRun"`
	Outcomes    []JSONForwardOutcome `json:"outcomes"`
}

// JSONForwardOutcome is the JSON output structure for one package.
type JSONForwardOutcome struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Write outputs the forward report as JSON.
func (w *JSONForwardWriter) Write(report *ForwardReport, options OutputOptions) error {
	outcomes := make([]JSONForwardOutcome, len(report.Result.Outcomes))
	for i, o := range report.Result.Outcomes {
		outcomes[i] = JSONForwardOutcome{
			Name:   o.Name,
			Status: o.Status.String(),
			From:   o.From,
			To:     o.To,
			Reason: errString(o.Err),
		}
	}

	return writeJSON(JSONForwardReport{
		Input:       report.Input,
		GeneratedAt: formatTime(report.GeneratedAt),
		DryRun:      report.DryRun,
		Outcomes:    outcomes,
	}, options.OutputPath)
}
