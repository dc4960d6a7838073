package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("writing script: %s", err)
	}
	return path
}

func TestRunExecutableSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := writeScript(t, t.TempDir(), "ok.sh", "#!/bin/sh\nexit 0\n")
	if got := runExecutable(path, nil); got != 0 {
		t.Fatalf("runExecutable() = %d, want 0", got)
	}
}

func TestRunExecutableNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := writeScript(t, t.TempDir(), "fail.sh", "#!/bin/sh\nexit 7\n")
	if got := runExecutable(path, nil); got != 7 {
		t.Fatalf("runExecutable() = %d, want 7", got)
	}
}

func TestRunExecutableMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if got := runExecutable(path, nil); got != 1 {
		t.Fatalf("runExecutable() = %d, want 1 for a binary that cannot even start", got)
	}
}
