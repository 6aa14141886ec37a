package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/masmgr/brdiff/internal/output"
)

func writeRecipe(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".mk"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// emptyConfig keeps the tests independent of any .brdiff.json on the machine.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"logging": {"level": "error"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiffCommand_NoHistory(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")

	writeRecipe(t, first, "libfoo", "LIBFOO_VERSION = 1.0\nLIBFOO_SITE = https://example.com/libfoo.git\n")
	writeRecipe(t, first, "libold", "LIBOLD_VERSION = 0.1\n")
	writeRecipe(t, first, "same", "SAME_VERSION = 2\n")
	writeRecipe(t, second, "libfoo", "LIBFOO_VERSION = 1.1\nLIBFOO_SITE = https://example.com/libfoo.git\n")
	writeRecipe(t, second, "libnew", "LIBNEW_VERSION = 3.0\n")
	writeRecipe(t, second, "same", "SAME_VERSION = 2\n")

	out := filepath.Join(root, "report.json")
	workdir := filepath.Join(root, "clones")
	args := []string{"brdiff", "--config", emptyConfig(t), "diff",
		"--no-history", "-w", workdir, "-f", "json", "-o", out, first, second}
	if err := App().Run(args); err != nil {
		t.Fatalf("diff: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var report output.JSONDiffReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if report.Summary.Added != 1 || report.Summary.Removed != 1 || report.Summary.Modified != 1 {
		t.Errorf("unexpected summary %+v", report.Summary)
	}
	if report.Summary.Enriched != nil {
		t.Error("history summary must be absent with --no-history")
	}
	names := make([]string, len(report.Entries))
	for i, e := range report.Entries {
		names[i] = e.Name
	}
	if strings.Join(names, ",") != "libfoo,libnew,libold" {
		t.Errorf("entries = %v", names)
	}
	if _, err := os.Stat(workdir); !os.IsNotExist(err) {
		t.Error("--no-history must not create the workspace")
	}
}

func TestDiffCommand_Filters(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.mk")
	second := filepath.Join(root, "b")
	writeRecipe(t, root, "a", "A_VERSION = 1\n")
	writeRecipe(t, second, "a", "A_VERSION = 2\n")
	writeRecipe(t, second, "host-tool", "HOST_TOOL_VERSION = 1\n")

	out := filepath.Join(root, "report.csv")
	args := []string{"brdiff", "--config", emptyConfig(t), "diff",
		"--no-history", "--exclude", "host-*", "-f", "csv", "-o", out, first, second}
	if err := App().Run(args); err != nil {
		t.Fatalf("diff: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "host-tool") {
		t.Errorf("excluded package in report:\n%s", data)
	}
	if !strings.Contains(string(data), "a,modified,1,2") {
		t.Errorf("missing modified row:\n%s", data)
	}
}

func TestDiffCommand_Errors(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, root, "a", "A_VERSION = 1\n")
	recipe := filepath.Join(root, "a.mk")
	cfg := emptyConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing inputs", args: []string{"diff", "--no-history", recipe}},
		{name: "bad format", args: []string{"diff", "--no-history", "-f", "yaml", recipe, recipe}},
		{name: "unreadable input", args: []string{"diff", "--no-history", recipe, filepath.Join(root, "absent.mk")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"brdiff", "--config", cfg}, tt.args...)
			if err := App().Run(args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestForwardCommand_ConflictingFilters(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, root, "a", "A_VERSION = 1\n")

	args := []string{"brdiff", "--config", emptyConfig(t), "forward",
		"-w", filepath.Join(root, "clones"), "--skip", "a", "--direct", "b", filepath.Join(root, "a.mk")}
	err := App().Run(args)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot be combined") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHistoryCommand_Errors(t *testing.T) {
	cfg := emptyConfig(t)
	workdir := filepath.Join(t.TempDir(), "clones")

	tests := []struct {
		name string
		args []string
	}{
		{name: "bad range", args: []string{"history", "-w", workdir, "--url", "https://example.com/x/lib.git", "v1.0"}},
		{name: "bad url", args: []string{"history", "-w", workdir, "--url", "https://example.com/lib", "v1.0..v1.1"}},
		{name: "missing range", args: []string{"history", "-w", workdir, "--url", "https://example.com/x/lib.git"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"brdiff", "--config", cfg}, tt.args...)
			if err := App().Run(args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
