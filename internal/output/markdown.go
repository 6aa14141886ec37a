package output

import (
	"fmt"

	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/forward"
)

// MarkdownDiffWriter writes diff reports as Markdown.
type MarkdownDiffWriter struct{}

// Write outputs the diff report as Markdown.
func (w *MarkdownDiffWriter) Write(report *DiffReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Package Diff Results")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**First:** %s\n\n", report.First)
	fmt.Fprintf(out, "**Second:** %s\n\n", report.Second)
	fmt.Fprintf(out, "**Added:** %d, **Removed:** %d, **Modified:** %d\n\n",
		report.Count(diff.KindAdded), report.Count(diff.KindRemoved), report.Count(diff.KindChanged))

	fmt.Fprintln(out, "## Packages")
	fmt.Fprintln(out)
	if options.ShowFixes {
		fmt.Fprintln(out, "| Change | Package | From | To | Sources | Commits | Fixes |")
		fmt.Fprintln(out, "|--------|---------|------|----|---------|---------|-------|")
	} else {
		fmt.Fprintln(out, "| Change | Package | From | To | Sources | Commits |")
		fmt.Fprintln(out, "|--------|---------|------|----|---------|---------|")
	}

	for _, e := range report.Entries {
		from, to := versions(e)
		sources := ""
		if e.SourcesChanged() {
			sources = "changed"
		}
		commits := "-"
		if e.HasHistory {
			commits = fmt.Sprintf("%d", len(e.History))
			if reversed(e) {
				commits += " (reversed)"
			}
		}
		row := fmt.Sprintf("| %s %s | `%s` | %s | %s | %s | %s |",
			kindEmoji(e.Kind), e.Kind, e.Name(), escapeMarkdown(from), escapeMarkdown(to), sources, commits)
		if options.ShowFixes {
			gained, lost := 0, 0
			if e.Kind == diff.KindChanged {
				gained, lost = report.Fixes.Fixes(e.Name())
			}
			row += fmt.Sprintf(" +%d / -%d |", gained, lost)
		}
		fmt.Fprintln(out, row)
	}

	for _, e := range report.Entries {
		if len(e.History) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "### %s\n\n", escapeMarkdown(e.Name()))
		for _, rec := range e.History {
			line := fmt.Sprintf("- `%s` %s (%s)", shortID(rec.ID), escapeMarkdown(rec.Summary), escapeMarkdown(rec.Author))
			if rec.Reversed {
				line += " *reversed*"
			}
			fmt.Fprintln(out, line)
		}
	}

	if e := report.Enrichment; e != nil && len(e.Skipped) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Packages Without History")
		fmt.Fprintln(out)
		for _, s := range e.Skipped {
			fmt.Fprintf(out, "- `%s`: %s\n", s.Name, escapeMarkdown(errString(s.Err)))
		}
	}

	return nil
}

// MarkdownForwardWriter writes forward reports as Markdown.
type MarkdownForwardWriter struct{}

// Write outputs the forward report as Markdown.
func (w *MarkdownForwardWriter) Write(report *ForwardReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Forward Results")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Input:** %s\n\n", report.Input)
	if report.DryRun {
		fmt.Fprintln(out, "**Dry run:** no recipe was modified")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "| # | Package | Status | From | To | Reason |")
	fmt.Fprintln(out, "|---|---------|--------|------|----|--------|")
	for i, o := range report.Result.Outcomes {
		fmt.Fprintf(out, "| %d | `%s` | %s %s | %s | %s | %s |\n",
			i+1, o.Name, statusEmoji(o.Status), o.Status,
			escapeMarkdown(o.From), escapeMarkdown(o.To), escapeMarkdown(errString(o.Err)))
	}

	return nil
}

func kindEmoji(kind diff.Kind) string {
	switch kind {
	case diff.KindAdded:
		return "🟢"
	case diff.KindRemoved:
		return "🔴"
	default:
		return "🟡"
	}
}

func statusEmoji(status forward.Status) string {
	switch status {
	case forward.StatusForwarded:
		return "🟢"
	case forward.StatusSkipped:
		return "🔴"
	default:
		return "⚪"
	}
}
