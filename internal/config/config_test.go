package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroProject(t *testing.T) {
	dir := t.TempDir()
	proj, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if proj.Build.Entry != "" || proj.Build.Output != "" || proj.Target.Triple != "" {
		t.Fatalf("expected zero Project, got %+v", proj)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	contents := "[build]\nentry = \"main.lak\"\noutput = \"bin/app\"\n\n[target]\ntriple = \"x86_64-unknown-linux-gnu\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}
	proj, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if proj.Build.Entry != "main.lak" || proj.Build.Output != "bin/app" {
		t.Fatalf("build config not parsed: %+v", proj.Build)
	}
	if proj.Target.Triple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("target config not parsed: %+v", proj.Target)
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for malformed toml")
	}
}

func TestFindProjectRootWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(""), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %s", err)
	}
	got := FindProjectRoot(nested)
	if got != root {
		t.Fatalf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestFindProjectRootFallsBackToStart(t *testing.T) {
	dir := t.TempDir()
	got := FindProjectRoot(dir)
	if got != dir {
		t.Fatalf("FindProjectRoot() = %q, want %q (no lak.toml anywhere above)", got, dir)
	}
}
