// Package manifest reads package collections from Buildroot recipes and
// show-info reports.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/masmgr/brdiff/internal/logging"
	"github.com/masmgr/brdiff/internal/pkginfo"
)

// ErrNoRecipes is returned when a directory holds recipes but none of them
// could be read.
var ErrNoRecipes = errors.New("failed to read mk-files")

const (
	versionSuffix = "_VERSION"
	siteSuffix    = "_SITE"
	recipeExt     = ".mk"
)

// nameFromPath returns the package name of a recipe file: its base name
// without the .mk extension.
func nameFromPath(path string) (string, bool) {
	base := filepath.Base(strings.TrimSpace(path))
	name, ok := strings.CutSuffix(base, recipeExt)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// nameFromKey derives a package name from a FOO_BAR_VERSION key.
func nameFromKey(key string) (string, bool) {
	prefix, ok := strings.CutSuffix(key, versionSuffix)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(strings.ToLower(prefix), "_", "-"), true
}

// stripComment returns the part of line before any '#', or false when
// nothing but blanks precede it.
func stripComment(line string) (string, bool) {
	if idx := strings.IndexByte(line, '#'); idx != -1 {
		line = line[:idx]
	}
	line = strings.TrimLeftFunc(line, isSpace)
	return line, line != ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

// splitAssignment splits KEY = VALUE at the first '='. Make style operators
// (:=, +=, ?=) are folded into the key and trimmed.
func splitAssignment(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx == -1 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	key = strings.TrimSpace(strings.TrimRight(key, ":+?"))
	value = strings.TrimSpace(line[idx+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

func isGitSite(key, value string) bool {
	return strings.HasSuffix(key, siteSuffix) && strings.HasSuffix(value, ".git")
}

// parseRecipe reads a single .mk recipe.
func parseRecipe(path string, logger *log.Logger) (pkginfo.Package, error) {
	name, ok := nameFromPath(path)
	if !ok {
		return pkginfo.Package{}, fmt.Errorf("invalid recipe name %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return pkginfo.Package{}, fmt.Errorf("failed to open recipe: %w", err)
	}
	defer func() { _ = f.Close() }()

	var keyName, version, site string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line, ok := stripComment(scanner.Text())
		if !ok {
			continue
		}
		key, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		if keyName == "" {
			keyName, _ = nameFromKey(key)
		}
		if version == "" && strings.HasSuffix(key, versionSuffix) {
			version = value
		}
		if site == "" && isGitSite(key, value) {
			site = value
		}
	}
	if err := scanner.Err(); err != nil {
		return pkginfo.Package{}, fmt.Errorf("failed to read recipe %s: %w", path, err)
	}

	if keyName != "" && keyName != name {
		logger.Warn("package name differs between file and recipe", "file", name, "recipe", keyName)
	}

	pkg := pkginfo.Package{
		Name:     name,
		Version:  version,
		Location: path,
	}
	if site != "" {
		pkg.Sources = []pkginfo.Source{{Kind: pkginfo.SourceGit, URI: site}}
	}
	return pkg, nil
}

// MkFileReader reads one Buildroot recipe.
type MkFileReader struct {
	path   string
	logger *log.Logger
}

// NewMkFileReader creates a reader for the recipe at path.
func NewMkFileReader(path string, logger *log.Logger) *MkFileReader {
	return &MkFileReader{path: path, logger: logging.Component(logger, "manifest")}
}

// Read returns a collection holding the recipe's package.
func (r *MkFileReader) Read() (pkginfo.Collection, error) {
	pkg, err := parseRecipe(r.path, r.logger)
	if err != nil {
		return nil, err
	}
	c := make(pkginfo.Collection, 1)
	c.Add(pkg)
	return c, nil
}

// MkDirReader reads every recipe below a directory.
type MkDirReader struct {
	dir    string
	logger *log.Logger
}

// NewMkDirReader creates a reader for all **/*.mk files under dir.
func NewMkDirReader(dir string, logger *log.Logger) *MkDirReader {
	return &MkDirReader{dir: dir, logger: logging.Component(logger, "manifest")}
}

// Read parses every recipe it finds. Unreadable recipes are skipped; the
// read fails only when nothing could be read and at least one recipe failed.
func (r *MkDirReader) Read() (pkginfo.Collection, error) {
	matches, err := doublestar.Glob(os.DirFS(r.dir), "**/*"+recipeExt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", r.dir, err)
	}

	c := make(pkginfo.Collection, len(matches))
	var lastErr error
	for _, rel := range matches {
		path := filepath.Join(r.dir, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		r.logger.Debug("process", "file", path)
		pkg, err := parseRecipe(path, r.logger)
		if err != nil {
			r.logger.Warn("failed to process recipe", "file", path, "err", err)
			lastErr = err
			continue
		}
		c.Add(pkg)
	}

	if len(c) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrNoRecipes, r.dir, lastErr)
	}
	r.logger.Debug("read recipes", "dir", r.dir, "packages", len(c))
	return c, nil
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
