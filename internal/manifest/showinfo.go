package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/masmgr/brdiff/internal/logging"
	"github.com/masmgr/brdiff/internal/pkginfo"
)

type showInfoDownload struct {
	Source string   `json:"source"`
	URIs   []string `json:"uris"`
}

type showInfoPackage struct {
	Name      *string            `json:"name"`
	Version   *string            `json:"version"`
	Downloads []showInfoDownload `json:"downloads"`
}

// valid reports whether the entry carries a name, a version and at least
// one download.
func (p showInfoPackage) valid() bool {
	return p.Name != nil && p.Version != nil && len(p.Downloads) > 0
}

func (p showInfoPackage) sources() []pkginfo.Source {
	var sources []pkginfo.Source
	for _, d := range p.Downloads {
		for _, uri := range d.URIs {
			sources = append(sources, pkginfo.ParseSource(uri))
		}
	}
	return sources
}

// ShowInfoReader reads the JSON report printed by Buildroot's
// "make show-info".
type ShowInfoReader struct {
	path   string
	logger *log.Logger
}

// NewShowInfoReader creates a reader for the report at path.
func NewShowInfoReader(path string, logger *log.Logger) *ShowInfoReader {
	return &ShowInfoReader{path: path, logger: logging.Component(logger, "manifest")}
}

// Read parses the report. Entries missing a name, version or download are
// dropped.
func (r *ShowInfoReader) Read() (pkginfo.Collection, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show-info report: %w", err)
	}
	return r.parse(data)
}

func (r *ShowInfoReader) parse(data []byte) (pkginfo.Collection, error) {
	var raw map[string]showInfoPackage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse show-info report %s: %w", r.path, err)
	}

	c := make(pkginfo.Collection, len(raw))
	for key, p := range raw {
		if !p.valid() {
			r.logger.Debug("dropping incomplete entry", "package", key)
			continue
		}
		c[key] = pkginfo.Package{
			Name:    *p.Name,
			Version: *p.Version,
			Sources: p.sources(),
		}
	}
	r.logger.Debug("read show-info report", "path", r.path, "packages", len(c))
	return c, nil
}
