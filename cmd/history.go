package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/enrich"
	"github.com/masmgr/brdiff/internal/git"
	"github.com/masmgr/brdiff/internal/output"
	"github.com/masmgr/brdiff/internal/pkginfo"
)

// HistoryCmd returns the history command.
func HistoryCmd() *cli.Command {
	flags := append(workspaceFlags(),
		&cli.StringFlag{
			Name:     "url",
			Aliases:  []string{"u"},
			Usage:    "Upstream repository URL (must end in .git)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "full-history",
			Usage: "Walk every parent instead of the first-parent chain",
		},
	)

	return &cli.Command{
		Name:      "history",
		Usage:     "List the upstream commits between two versions of one repository",
		ArgsUsage: "FIRST..SECOND",
		Flags:     flags,
		Action:    historyAction,
	}
}

func historyAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one range argument FIRST..SECOND, got %d", c.NArg())
	}
	first, second, err := git.ParseRange(c.Args().First())
	if err != nil {
		return err
	}
	url := c.String("url")
	name, err := git.RepoName(url)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	if err := ctx.InitWorkspace(); err != nil {
		return err
	}

	repo, err := ctx.Workspace.Obtain(c.Context, url)
	if err != nil {
		return err
	}
	commits, err := ctx.Reconciler.History(c.Context, repo, first, second)
	if err != nil {
		return err
	}

	sources := []pkginfo.Source{{Kind: pkginfo.SourceGit, URI: url}}
	entry := &diff.Entry{
		Kind:   diff.KindChanged,
		First:  pkginfo.Package{Name: name, Version: first, Sources: sources},
		Second: pkginfo.Package{Name: name, Version: second, Sources: sources},
	}
	entry.AppendHistory(enrich.Records(commits)...)

	return output.WriteEntry(os.Stdout, entry)
}
