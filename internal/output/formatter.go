package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/brdiff/internal/bugfix"
	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/enrich"
	"github.com/masmgr/brdiff/internal/forward"
)

// Compile-time interface conformance checks.
var (
	// DiffReportWriter implementations
	_ DiffReportWriter = (*ConsoleDiffWriter)(nil)
	_ DiffReportWriter = (*JSONDiffWriter)(nil)
	_ DiffReportWriter = (*CSVDiffWriter)(nil)
	_ DiffReportWriter = (*MarkdownDiffWriter)(nil)
	_ DiffReportWriter = (*CIDiffWriter)(nil)

	// ForwardReportWriter implementations
	_ ForwardReportWriter = (*ConsoleForwardWriter)(nil)
	_ ForwardReportWriter = (*JSONForwardWriter)(nil)
	_ ForwardReportWriter = (*CSVForwardWriter)(nil)
	_ ForwardReportWriter = (*MarkdownForwardWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// ParseFormat converts a flag value to an OutputFormat. "md" is accepted
// for markdown and the empty string means console.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console", "text":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "ci", "ndjson":
		return FormatCI, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected console, json, csv, markdown or ci)", s)
	}
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
	ShowFixes  bool
}

// DiffReport holds an enriched package diff.
type DiffReport struct {
	First       string
	Second      string
	GeneratedAt time.Time
	Entries     []*diff.Entry
	Enrichment  *enrich.Report // nil when history was not requested
	Fixes       *bugfix.Result // nil when fixes were not classified
}

// NewDiffReport orders the entries of result by package name.
func NewDiffReport(first, second string, result diff.Result, enrichment *enrich.Report, fixes *bugfix.Result) *DiffReport {
	return &DiffReport{
		First:       first,
		Second:      second,
		GeneratedAt: time.Now(),
		Entries:     result.Sorted(),
		Enrichment:  enrichment,
		Fixes:       fixes,
	}
}

// Count returns the number of entries of the given kind.
func (r *DiffReport) Count(kind diff.Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// ForwardReport holds the outcome of a forward run.
type ForwardReport struct {
	Input       string
	GeneratedAt time.Time
	DryRun      bool
	Result      *forward.Result
}

// DiffReportWriter writes package diff reports.
type DiffReportWriter interface {
	Write(report *DiffReport, options OutputOptions) error
}

// ForwardReportWriter writes forward run reports.
type ForwardReportWriter interface {
	Write(report *ForwardReport, options OutputOptions) error
}

// NewDiffReportWriter creates a diff report writer for the specified format.
func NewDiffReportWriter(format OutputFormat) DiffReportWriter {
	switch format {
	case FormatJSON:
		return &JSONDiffWriter{}
	case FormatCSV:
		return &CSVDiffWriter{}
	case FormatMarkdown:
		return &MarkdownDiffWriter{}
	case FormatCI:
		return &CIDiffWriter{}
	default:
		return &ConsoleDiffWriter{}
	}
}

// NewForwardReportWriter creates a forward report writer for the specified format.
func NewForwardReportWriter(format OutputFormat) ForwardReportWriter {
	switch format {
	case FormatJSON, FormatCI:
		return &JSONForwardWriter{}
	case FormatCSV:
		return &CSVForwardWriter{}
	case FormatMarkdown:
		return &MarkdownForwardWriter{}
	default:
		return &ConsoleForwardWriter{}
	}
}
