package output

import (
	"strconv"

	"github.com/masmgr/brdiff/internal/diff"
)

// CSVDiffWriter writes diff reports as CSV, one row per package.
type CSVDiffWriter struct{}

// Write outputs the diff report as CSV.
func (w *CSVDiffWriter) Write(report *DiffReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Name", "Kind", "From", "To", "SourcesChanged", "HasHistory", "Commits", "Reversed"}
	if options.ShowFixes {
		headers = append(headers, "FixesGained", "FixesLost")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, e := range report.Entries {
		from, to := versions(e)
		row := []string{
			e.Name(),
			e.Kind.String(),
			from,
			to,
			strconv.FormatBool(e.SourcesChanged()),
			strconv.FormatBool(e.HasHistory),
			strconv.Itoa(len(e.History)),
			strconv.FormatBool(reversed(e)),
		}
		if options.ShowFixes {
			gained, lost := 0, 0
			if e.Kind == diff.KindChanged {
				gained, lost = report.Fixes.Fixes(e.Name())
			}
			row = append(row, strconv.Itoa(gained), strconv.Itoa(lost))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVForwardWriter writes forward reports as CSV.
type CSVForwardWriter struct{}

// Write outputs the forward report as CSV.
func (w *CSVForwardWriter) Write(report *ForwardReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Name", "Status", "From", "To", "Reason"}); err != nil {
		return err
	}
	for _, o := range report.Result.Outcomes {
		row := []string{o.Name, o.Status.String(), o.From, o.To, errString(o.Err)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
