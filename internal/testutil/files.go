// Package testutil provides small fixtures shared by the compiler
// phases' tests: writing temporary .lak files so the resolver and
// analyzer tests exercise real file I/O rather than mocking it away
// (grounded on the teacher's own internal/testutil helper package).
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteModule writes name (without extension) as a .lak file
// containing src under dir, returning the file's full path.
func WriteModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name+".lak")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %s", path, err)
	}
	return path
}

// TempProject creates a temp directory for a multi-file test and
// returns it; it is removed automatically at test cleanup.
func TempProject(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
