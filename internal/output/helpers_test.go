package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masmgr/brdiff/internal/bugfix"
	"github.com/masmgr/brdiff/internal/diff"
	"github.com/masmgr/brdiff/internal/enrich"
	"github.com/masmgr/brdiff/internal/pkginfo"
)

func readTestFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func tempOutput(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func gitSource(uri string) []pkginfo.Source {
	return []pkginfo.Source{{Kind: pkginfo.SourceGit, URI: uri}}
}

// sampleResult covers every entry shape: added with and without version,
// removed, changed with forward history, reversed history, no history and a
// sources-only flag.
func sampleResult() diff.Result {
	first := pkginfo.Collection{}
	second := pkginfo.Collection{}

	second.Add(pkginfo.Package{Name: "dropbear", Version: "2024.85"})
	second.Add(pkginfo.Package{Name: "skeleton"})
	first.Add(pkginfo.Package{Name: "telnetd", Version: "0.17"})

	first.Add(pkginfo.Package{Name: "zlib", Version: "v1.3", Sources: gitSource("https://h/zlib.git")})
	second.Add(pkginfo.Package{Name: "zlib", Version: "v1.3.1", Sources: gitSource("https://h/zlib.git")})

	first.Add(pkginfo.Package{Name: "openssl", Version: "3.2.0", Sources: gitSource("https://h/openssl.git")})
	second.Add(pkginfo.Package{Name: "openssl", Version: "3.1.4", Sources: gitSource("https://h/openssl.git")})

	first.Add(pkginfo.Package{Name: "busybox", Version: "1.36.0", Sources: gitSource("https://old/busybox.git")})
	second.Add(pkginfo.Package{Name: "busybox", Version: "1.36.1", Sources: gitSource("https://new/busybox.git")})

	result := diff.Build(first, second)
	result["zlib"].AppendHistory(
		diff.HistoryRecord{Summary: "zlib 1.3.1", Author: "Mark Adler <madler@example.com>", ID: "51b7f2abdade71cd9bb0e7a373ef2610ec6f9daf"},
		diff.HistoryRecord{Summary: "Fix reading disk number start on zip64 files", Author: "Mark Adler <madler@example.com>", ID: "b14484997a50df4c8e9c4c6fcb4d22b1f4c0b8a4"},
	)
	result["openssl"].AppendHistory(
		diff.HistoryRecord{Summary: "Prepare for 3.2.0", Author: "Release <release@example.com>", ID: "0123456789abcdef0123456789abcdef01234567", Reversed: true},
	)
	return result
}

func sampleReport(t *testing.T) *DiffReport {
	t.Helper()
	result := sampleResult()
	detector, err := bugfix.NewDetector([]string{`\bfix\b`})
	if err != nil {
		t.Fatal(err)
	}
	report := NewDiffReport("old/output", "new/output", result, &enrich.Report{
		Changed:  3,
		Enriched: 2,
		Skipped:  []enrich.Skip{{Name: "busybox", Err: errors.New("clone error for https://new/busybox.git: repository not found")}},
	}, detector.Detect(result))
	report.GeneratedAt = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	return report
}
