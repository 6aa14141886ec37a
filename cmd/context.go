package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/brdiff/config"
	"github.com/masmgr/brdiff/internal/git"
	"github.com/masmgr/brdiff/internal/logging"
	"github.com/masmgr/brdiff/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config     *config.Config
	Logger     *log.Logger
	Workspace  *git.Workspace
	Reconciler *git.Reconciler
}

// NewCommandContext creates a context from CLI flags.
// It loads the configuration and creates the logger and the workspace.
// The workspace directory is left untouched until InitWorkspace.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	ws := git.NewWorkspace(git.WorkspaceOptions{
		Dir:          cfg.Workspace.Dir,
		KeyPath:      resolveKey(cfg.Workspace.Key),
		Clean:        cfg.Workspace.Clean,
		ShortHistory: cfg.Workspace.ShortHistory,
	}, logger)

	return &CommandContext{
		Config:     cfg,
		Logger:     logger,
		Workspace:  ws,
		Reconciler: git.NewReconciler(cfg.Workspace.ShortHistory, logger),
	}, nil
}

// InitWorkspace creates (or recreates, with --clean) the workspace directory.
func (ctx *CommandContext) InitWorkspace() error {
	if err := ctx.Workspace.Init(); err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	return nil
}

// resolveKey returns the configured key, or ~/.ssh/id_rsa when it exists.
func resolveKey(key string) string {
	if key != "" {
		return key
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	candidate := filepath.Join(home, ".ssh", "id_rsa")
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	format, err := getOutputFormat(c.String("format"))
	if err != nil {
		return output.OutputOptions{}, err
	}
	return output.OutputOptions{
		Format:     format,
		OutputPath: c.String("output"),
		ShowFixes:  c.Bool("fixes"),
	}, nil
}
