package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/brdiff/config"
	"github.com/masmgr/brdiff/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "brdiff",
		Usage:   "Compare Buildroot package sets and explain version changes with upstream history",
		Version: "0.3.0",
		Commands: []*cli.Command{
			DiffCmd(),
			HistoryCmd(),
			ForwardCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
	}
}

// Workspace flags shared by every command that clones upstream repositories
func workspaceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "workdir",
			Aliases: []string{"w"},
			Usage:   "Directory holding the upstream clones (default: from config or $XDG_CACHE_HOME/brdiff)",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "Private key for ssh remotes (default: ~/.ssh/id_rsa when present)",
		},
		&cli.BoolFlag{
			Name:    "clean",
			Aliases: []string{"c"},
			Usage:   "Remove the working directory before use",
		},
	}
}

// Report flags shared by diff and forward
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) (output.OutputFormat, error) {
	format, err := output.ParseFormat(s)
	if err != nil {
		return "", fmt.Errorf("invalid --format: %w", err)
	}
	return format, nil
}

// loadConfig loads configuration from file or defaults and applies the
// command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(c, cfg)
	return cfg, nil
}

func applyOverrides(c *cli.Context, cfg *config.Config) {
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if dir := c.String("workdir"); dir != "" {
		cfg.Workspace.Dir = dir
	}
	if key := c.String("key"); key != "" {
		cfg.Workspace.Key = key
	}
	if c.Bool("clean") {
		cfg.Workspace.Clean = true
	}
	if c.Bool("full-history") {
		cfg.Workspace.ShortHistory = false
	}
	if jobs := c.Int("jobs"); jobs > 0 {
		cfg.Workspace.Jobs = jobs
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if patterns := c.StringSlice("fix-pattern"); len(patterns) > 0 {
		cfg.Bugfix.Patterns = patterns
	}

	if branch := c.String("branch"); branch != "" {
		cfg.Forward.Branch = branch
	}
	if tag := c.String("tag"); tag != "" {
		cfg.Forward.Tag = tag
	}
	if c.IsSet("abbrev") {
		cfg.Forward.Abbrev = c.Int("abbrev")
	}
	if c.IsSet("limit") {
		cfg.Forward.Limit = c.Int("limit")
	}
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
