package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".brdiff.json"

// Config is the root configuration structure.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	Logging   LoggingConfig   `json:"logging"`
	Filters   FilterConfig    `json:"filters"`
	Bugfix    BugfixConfig    `json:"bugfix"`
	Forward   ForwardConfig   `json:"forward"`
}

// WorkspaceConfig holds the clone cache and history options.
type WorkspaceConfig struct {
	Dir          string `json:"dir"`          // Default: $XDG_CACHE_HOME/brdiff
	Key          string `json:"key"`          // Private key for ssh remotes
	Clean        bool   `json:"clean"`        // Remove the workspace before use
	ShortHistory bool   `json:"shortHistory"` // Follow first parents only. Default: true
	Jobs         int    `json:"jobs"`         // Default: 4
}

// LoggingConfig holds logger options.
type LoggingConfig struct {
	Level string `json:"level"` // debug, info, warn or error
}

// FilterConfig holds package name filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// BugfixConfig holds fix commit detection configuration.
type BugfixConfig struct {
	Patterns []string `json:"patterns"` // Regex patterns matched against commit summaries
}

// ForwardConfig holds defaults for the forward command.
type ForwardConfig struct {
	Branch string `json:"branch"` // Default: origin/master
	Tag    string `json:"tag"`    // Exact tag or semver constraint
	Abbrev int    `json:"abbrev"` // Hex digits kept from the commit hash; 0 keeps all
	Limit  int    `json:"limit"`  // Forwarded packages per run; 0 means no limit
}

// DefaultWorkspaceDir returns the workspace used when none is configured.
func DefaultWorkspaceDir() string {
	return filepath.Join(xdg.CacheHome, "brdiff")
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Dir:          DefaultWorkspaceDir(),
			ShortHistory: true,
			Jobs:         4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Bugfix: BugfixConfig{
			Patterns: []string{
				`\bfix(ed|es)?\b`,
				`\bbug\b`,
				`\bhotfix\b`,
				`\bCVE-\d{4}-\d+\b`,
			},
		},
		Forward: ForwardConfig{
			Branch: "origin/master",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Workspace.Dir == "" {
		cfg.Workspace.Dir = DefaultWorkspaceDir()
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
