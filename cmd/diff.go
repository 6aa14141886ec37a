package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/enrich"
	"github.com/masmgr/brdiff/internal/manifest"
	"github.com/masmgr/brdiff/internal/output"
)

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	flags := append(workspaceFlags(), outputFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "full-history",
			Usage: "Walk every parent instead of the first-parent chain",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Number of packages reconciled concurrently (default: from config)",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Only compare the package sets; do not touch upstream repositories",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Package name globs to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Package name globs to exclude (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "fixes",
			Usage: "Count fix commits in each package history",
		},
		&cli.StringSliceFlag{
			Name:  "fix-pattern",
			Usage: "Regex marking a fix commit (can be specified multiple times; default: from config)",
		},
	)

	return &cli.Command{
		Name:      "diff",
		Aliases:   []string{"d"},
		Usage:     "Compare two package sets and list upstream commits between changed versions",
		ArgsUsage: "FIRST SECOND",
		Flags:     flags,
		Action:    diffAction,
	}
}

func diffAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected two inputs (recipe file, recipe directory or show-info JSON), got %d", c.NArg())
	}
	firstPath, secondPath := c.Args().Get(0), c.Args().Get(1)

	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	first, err := manifest.Open(firstPath, ctx.Logger).Read()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", firstPath, err)
	}
	second, err := manifest.Open(secondPath, ctx.Logger).Read()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", secondPath, err)
	}

	first = first.Filter(cfg.Filters.Include, cfg.Filters.Exclude)
	second = second.Filter(cfg.Filters.Include, cfg.Filters.Exclude)
	result := diff.Build(first, second)

	var enrichment *enrich.Report
	if !c.Bool("no-history") {
		if err := ctx.InitWorkspace(); err != nil {
			return err
		}
		enricher := enrich.New(ctx.Workspace, ctx.Reconciler, enrich.Options{Jobs: cfg.Workspace.Jobs}, ctx.Logger)
		enrichment = enricher.Enrich(c.Context, result)
	}

	report := output.NewDiffReport(firstPath, secondPath, result, enrichment, nil)
	if opts.ShowFixes {
		report.Fixes, err = detectFixes(cfg, result)
		if err != nil {
			return err
		}
	}

	return writeDiffReport(report, opts)
}
