package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lak/internal/config"
)

func newBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <entry>",
		Short: "compile an entry file to a native executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := args[0]
			exePath := resolveOutputPath(entry, output)
			if err := buildExecutable(entry, exePath); err != nil {
				reportAndExit(err)
				return nil
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "built %s\n", exePath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output executable path")
	return cmd
}

// resolveOutputPath applies spec §6's defaulting: an explicit -o flag
// wins, then lak.toml's [build] output, then the entry file's stem.
func resolveOutputPath(entry, flagOutput string) string {
	if flagOutput != "" {
		return flagOutput
	}
	dir := config.FindProjectRoot(filepath.Dir(entry))
	if proj, err := config.Load(dir); err == nil && proj.Build.Output != "" {
		return proj.Build.Output
	}
	stem := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	return stem
}

// buildExecutable runs the full pipeline: compile to IR, assemble to
// a relocatable object in a scratch temp directory, link to exePath.
func buildExecutable(entry, exePath string) error {
	module, err := compile(entry)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "lak-build-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	llPath := filepath.Join(tmpDir, "out.ll")
	objPath := filepath.Join(tmpDir, "out.o")

	if err := writeIR(module, llPath); err != nil {
		return err
	}
	if err := assemble(llPath, objPath); err != nil {
		return err
	}
	return link(objPath, exePath)
}
