package cmd

import (
	"fmt"

	"github.com/masmgr/brdiff/config"
	"github.com/masmgr/brdiff/internal/bugfix"
	"github.com/masmgr/brdiff/internal/diff"
)

func detectFixes(cfg *config.Config, result diff.Result) (*bugfix.Result, error) {
	detector, err := bugfix.NewDetector(cfg.Bugfix.Patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid fix pattern: %w", err)
	}
	return detector.Detect(result), nil
}
