package forward

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReplaceVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.mk")
	content := "LIB_VERSION = abc123\nLIB_SOURCE = lib-abc123.tar.gz\nLIB_SITE = git@h:o/lib.git\n"
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := ReplaceVersion(path, "abc123", "def456"); err != nil {
		t.Fatalf("ReplaceVersion: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := "LIB_VERSION = def456\nLIB_SOURCE = lib-def456.tar.gz\nLIB_SITE = git@h:o/lib.git\n"
	if string(got) != expected {
		t.Errorf("content = %q, expected %q", got, expected)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected no leftover temp file, stat err = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, expected 0640", info.Mode().Perm())
	}
}

func TestReplaceVersion_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.mk")
	if err := ReplaceVersion(path, "a", "b"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected no temp file, stat err = %v", err)
	}
}

func TestPreviewReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.mk")
	content := "# lib\nLIB_VERSION = abc123\nLIB_SITE = git@h:o/lib.git\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	patch, err := PreviewReplace(path, "abc123", "def456")
	if err != nil {
		t.Fatalf("PreviewReplace: %v", err)
	}
	for _, want := range []string{"--- " + path, "+++ " + path, "-LIB_VERSION = abc123", "+LIB_VERSION = def456"} {
		if !strings.Contains(patch, want) {
			t.Errorf("patch missing %q:\n%s", want, patch)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Error("preview must not modify the file")
	}

	patch, err = PreviewReplace(path, "zzz", "yyy")
	if err != nil {
		t.Fatalf("PreviewReplace: %v", err)
	}
	if patch != "" {
		t.Errorf("expected empty patch, got %q", patch)
	}
}
