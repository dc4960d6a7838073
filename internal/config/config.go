// Package config loads the optional lak.toml project file (spec §6):
// the compiler's entry file, default output path, and a target triple
// override for cross-compilation.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const FileName = "lak.toml"

// Project is the parsed form of lak.toml. Every field is optional;
// zero values mean "let the CLI flag or built-in default decide."
type Project struct {
	Build  BuildConfig  `toml:"build"`
	Target TargetConfig `toml:"target"`
}

type BuildConfig struct {
	Entry  string `toml:"entry"`
	Output string `toml:"output"`
}

type TargetConfig struct {
	Triple string `toml:"triple"`
}

// Load reads and parses lak.toml from dir. A missing file is not an
// error — it returns a zero Project, letting the caller fall back to
// CLI flags and built-in defaults.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	var p Project
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProjectRoot walks upward from startDir looking for lak.toml,
// mirroring the teacher's project-root discovery (spec §6). Returns
// startDir itself if no lak.toml is found anywhere above it.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}
