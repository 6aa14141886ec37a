package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/forward"
)

// palette colours console output. Writing to a file uses the plain palette.
type palette struct {
	title   func(string, ...interface{}) string
	added   func(string, ...interface{}) string
	removed func(string, ...interface{}) string
	changed func(string, ...interface{}) string
	warn    func(string, ...interface{}) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := fmt.Sprintf
		return palette{title: plain, added: plain, removed: plain, changed: plain, warn: plain}
	}
	return palette{
		title:   color.GreenString,
		added:   color.GreenString,
		removed: color.RedString,
		changed: color.YellowString,
		warn:    color.YellowString,
	}
}

func (p palette) marker(kind diff.Kind) string {
	switch kind {
	case diff.KindAdded:
		return p.added(kind.Marker())
	case diff.KindRemoved:
		return p.removed(kind.Marker())
	case diff.KindChanged:
		return p.changed(kind.Marker())
	default:
		return kind.Marker()
	}
}

// ConsoleDiffWriter writes diff reports as indented text blocks.
type ConsoleDiffWriter struct{}

// Write outputs the diff report to the console.
func (w *ConsoleDiffWriter) Write(report *DiffReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	p := newPalette(file == nil)

	fmt.Fprintln(out, p.title("Package Diff Results"))
	fmt.Fprintf(out, "First: %s\n", report.First)
	fmt.Fprintf(out, "Second: %s\n", report.Second)
	fmt.Fprintf(out, "Added: %s, Removed: %s, Modified: %s\n",
		humanize.Comma(int64(report.Count(diff.KindAdded))),
		humanize.Comma(int64(report.Count(diff.KindRemoved))),
		humanize.Comma(int64(report.Count(diff.KindChanged))),
	)
	if e := report.Enrichment; e != nil {
		fmt.Fprintf(out, "History: %s enriched, %s without git source, %s skipped\n",
			humanize.Comma(int64(e.Enriched)),
			humanize.Comma(int64(e.NoSource)),
			humanize.Comma(int64(len(e.Skipped))),
		)
	}
	if options.ShowFixes && report.Fixes != nil {
		fmt.Fprintf(out, "Fixes: %s\n", humanize.Comma(int64(report.Fixes.TotalFixes)))
	}
	fmt.Fprintln(out)

	for _, e := range report.Entries {
		if err := writeEntryBlock(out, e, p); err != nil {
			return err
		}
		if options.ShowFixes && e.Kind == diff.KindChanged {
			if gained, lost := report.Fixes.Fixes(e.Name()); gained > 0 || lost > 0 {
				fmt.Fprintf(out, "      fixes: %d gained, %d lost\n", gained, lost)
			}
		}
	}

	if e := report.Enrichment; e != nil && len(e.Skipped) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, p.warn("Packages without history:"))
		for _, s := range e.Skipped {
			fmt.Fprintf(out, "  %s: %s\n", s.Name, errString(s.Err))
		}
	}
	return nil
}

// WriteEntry renders one diff entry as an uncoloured text block.
func WriteEntry(w io.Writer, e *diff.Entry) error {
	return writeEntryBlock(w, e, newPalette(false))
}

func writeEntryBlock(w io.Writer, e *diff.Entry, p palette) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("%s %s [%s]\n", p.marker(e.Kind), e.Name(), e.Kind)
	switch e.Kind {
	case diff.KindAdded:
		if e.Package.HasVersion() {
			printf("      version: %s\n", e.Package.Version)
		}
	case diff.KindChanged:
		if e.VersionChanged() {
			printf("      version: %s -> %s\n", e.First.Version, e.Second.Version)
		}
		if e.SourcesChanged() {
			printf("      sources: changed\n")
		}
		for _, rec := range e.History {
			printf("       - %s\n", rec.Summary)
			printf("           - id: %s\n", rec.ID)
			printf("           - author: %s\n", rec.Author)
			if rec.Reversed {
				printf("           - direction: reversed\n")
			}
		}
	}
	return err
}

// ConsoleForwardWriter writes forward reports as a table.
type ConsoleForwardWriter struct{}

// Write outputs the forward report to the console.
func (w *ConsoleForwardWriter) Write(report *ForwardReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	p := newPalette(file == nil)
	result := report.Result

	title := "Forward Results"
	if report.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(out, p.title(title))
	fmt.Fprintf(out, "Input: %s\n", report.Input)
	fmt.Fprintf(out, "Forwarded: %s, Unchanged: %s, Skipped: %s\n\n",
		humanize.Comma(int64(result.Count(forward.StatusForwarded))),
		humanize.Comma(int64(result.Count(forward.StatusUnchanged))),
		humanize.Comma(int64(result.Count(forward.StatusSkipped))),
	)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPackage\tStatus\tFrom\tTo\tReason")
	for i, o := range result.Outcomes {
		status := o.Status.String()
		switch o.Status {
		case forward.StatusForwarded:
			status = p.added(status)
		case forward.StatusSkipped:
			status = p.removed(status)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			o.Name,
			status,
			truncateMessage(o.From, 14),
			truncateMessage(o.To, 14),
			truncateMessage(errString(o.Err), 60),
		)
	}
	return tw.Flush()
}
