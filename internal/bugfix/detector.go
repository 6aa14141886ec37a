// Package bugfix classifies upstream commits that fix defects.
package bugfix

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/masmgr/brdiff/internal/diff"
)

// Result holds fix counts for the history attached to a diff.
type Result struct {
	// FixCommits is the set of commit ids whose summary looks like a fix.
	FixCommits map[string]struct{}
	// PackageFixes maps package names to the number of fixes they pick up.
	PackageFixes map[string]int
	// PackageLostFixes maps package names to the number of fixes a
	// downgrade drops.
	PackageLostFixes map[string]int
	// TotalFixes is the number of fix records across all packages.
	TotalFixes int
}

// Fixes returns the gained and lost fix counts of a package.
func (r *Result) Fixes(name string) (gained, lost int) {
	if r == nil {
		return 0, 0
	}
	return r.PackageFixes[name], r.PackageLostFixes[name]
}

// Detector matches commit summaries against regex patterns.
type Detector struct {
	patterns []*regexp.Regexp
}

// NewDetector compiles the patterns case-insensitively. Blank patterns are
// ignored.
func NewDetector(patterns []string) (*Detector, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid fix pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Detector{patterns: compiled}, nil
}

// IsFix reports whether summary matches any pattern.
func (d *Detector) IsFix(summary string) bool {
	for _, re := range d.patterns {
		if re.MatchString(summary) {
			return true
		}
	}
	return false
}

// Detect counts fix records per package. Records of reversed ranges count
// as lost fixes.
func (d *Detector) Detect(result diff.Result) *Result {
	out := &Result{
		FixCommits:       make(map[string]struct{}),
		PackageFixes:     make(map[string]int),
		PackageLostFixes: make(map[string]int),
	}
	if len(d.patterns) == 0 {
		return out
	}

	for name, entry := range result {
		if !entry.HasHistory {
			continue
		}
		for _, rec := range entry.History {
			if !d.IsFix(rec.Summary) {
				continue
			}
			out.FixCommits[rec.ID] = struct{}{}
			out.TotalFixes++
			if rec.Reversed {
				out.PackageLostFixes[name]++
			} else {
				out.PackageFixes[name]++
			}
		}
	}
	return out
}
