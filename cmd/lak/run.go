package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <entry>",
		Short: "compile and immediately execute an entry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := args[0]

			tmpDir, err := os.MkdirTemp("", "lak-run-*")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmpDir)

			exePath := filepath.Join(tmpDir, "a.out")
			if err := buildExecutable(entry, exePath); err != nil {
				reportAndExit(err)
				return nil
			}

			os.Exit(runExecutable(exePath, args[1:]))
			return nil
		},
	}
	return cmd
}

// runExecutable executes the compiled binary and maps its exit status
// to a process exit code, translating Unix termination by signal N to
// 128+N per spec §6.
func runExecutable(path string, args []string) int {
	child := exec.Command(path, args...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	err := child.Run()
	if err == nil {
		return 0
	}

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 1
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return 128 + int(status.Signal())
		}
		return status.ExitStatus()
	}
	return exitErr.ExitCode()
}
