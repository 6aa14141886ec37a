package manifest

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/masmgr/brdiff/internal/pkginfo"
)

// Open picks a reader for path: a .json file is a show-info report, a
// directory is scanned for recipes, anything else is a single recipe.
func Open(path string, logger *log.Logger) pkginfo.Reader {
	switch {
	case strings.EqualFold(filepath.Ext(path), ".json"):
		return NewShowInfoReader(path, logger)
	case isDir(path):
		return NewMkDirReader(path, logger)
	default:
		return NewMkFileReader(path, logger)
	}
}

// Compile-time interface conformance checks.
var (
	_ pkginfo.Reader = (*MkFileReader)(nil)
	_ pkginfo.Reader = (*MkDirReader)(nil)
	_ pkginfo.Reader = (*ShowInfoReader)(nil)
)
