package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/brdiff/internal/forward"
	"github.com/masmgr/brdiff/internal/manifest"
	"github.com/masmgr/brdiff/internal/output"
)

// ForwardCmd returns the forward command.
func ForwardCmd() *cli.Command {
	flags := append(workspaceFlags(), outputFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Recipe file or directory with recipes (used when no argument is given)",
			Value:   "package.mk",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch whose latest commit becomes the new version (default: from config or origin/master)",
		},
		&cli.StringFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "Tag name or semver constraint such as ~1.4; takes precedence over --branch",
		},
		&cli.IntFlag{
			Name:    "abbrev",
			Aliases: []string{"a"},
			Usage:   "Abbreviate the new commit hash to N hex digits; 0 keeps the full hash",
		},
		&cli.StringSliceFlag{
			Name:    "skip",
			Aliases: []string{"s"},
			Usage:   "Package name globs never processed (comma separated or repeated)",
		},
		&cli.StringSliceFlag{
			Name:    "direct",
			Aliases: []string{"d"},
			Usage:   "Only process these package name globs (comma separated or repeated)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Stop after forwarding N packages; 0 means no limit",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the recipe edits as unified diffs instead of applying them",
		},
	)

	return &cli.Command{
		Name:      "forward",
		Aliases:   []string{"fwd"},
		Usage:     "Move package versions in recipe files to the latest upstream commit or tag",
		ArgsUsage: "[INPUT]",
		Flags:     flags,
		Action:    forwardAction,
	}
}

func forwardAction(c *cli.Context) error {
	input := c.String("input")
	if c.NArg() > 0 {
		input = c.Args().First()
	}

	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	forwarder, err := forward.New(ctx.Workspace, ctx.Reconciler, forward.Options{
		Branch: cfg.Forward.Branch,
		Tag:    cfg.Forward.Tag,
		Abbrev: cfg.Forward.Abbrev,
		Allow:  c.StringSlice("direct"),
		Deny:   c.StringSlice("skip"),
		Limit:  cfg.Forward.Limit,
		DryRun: c.Bool("dry-run"),
	}, os.Stdout, ctx.Logger)
	if err != nil {
		if errors.Is(err, forward.ErrConflictingFilters) {
			return fmt.Errorf("--skip and --direct cannot be combined: %w", err)
		}
		return err
	}

	packages, err := manifest.Open(input, ctx.Logger).Read()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	if err := ctx.InitWorkspace(); err != nil {
		return err
	}

	result, err := forwarder.Run(c.Context, packages)
	if err != nil {
		return err
	}

	return writeForwardReport(&output.ForwardReport{
		Input:       input,
		GeneratedAt: time.Now(),
		DryRun:      c.Bool("dry-run"),
		Result:      result,
	}, opts)
}
