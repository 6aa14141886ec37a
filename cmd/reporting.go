package cmd

import (
	"github.com/masmgr/brdiff/internal/output"
)

func writeDiffReport(report *output.DiffReport, opts output.OutputOptions) error {
	writer := output.NewDiffReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeForwardReport(report *output.ForwardReport, opts output.OutputOptions) error {
	writer := output.NewForwardReportWriter(opts.Format)
	return writer.Write(report, opts)
}
