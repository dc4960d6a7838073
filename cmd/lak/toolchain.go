package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/ir"
)

// runtimeLibEnv names the environment variable pointing at the
// runtime static archive (spec §6: the runtime is an external
// collaborator, specified only by its ABI, never built by this repo).
const runtimeLibEnv = "LAK_RUNTIME_LIB"

// writeIR serializes module as textual LLVM IR to llPath.
func writeIR(module *ir.Module, llPath string) error {
	if err := os.WriteFile(llPath, []byte(module.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write IR to %s: %w", llPath, err)
	}
	return nil
}

// assemble invokes the host's llc to lower llPath to a relocatable,
// position-independent object file (spec §4.5, "Object emission").
// llir/llvm only builds and prints IR; turning it into machine code
// crosses the same external-process boundary the spec already grants
// the linker (spec §4.8 open question).
func assemble(llPath, objPath string) error {
	cmd := exec.Command("llc", "-filetype=obj", "-relocation-model=pic", "-o", objPath, llPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("llc failed: %w", err)
	}
	return nil
}

// link invokes the host C compiler as the system linker, against the
// runtime static archive named by LAK_RUNTIME_LIB (spec §4.1, "link
// stage: external collaborator").
func link(objPath, exePath string) error {
	runtimeLib := os.Getenv(runtimeLibEnv)
	args := []string{objPath, "-o", exePath}
	if runtimeLib != "" {
		args = append(args, runtimeLib)
	}
	cmd := exec.Command("cc", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("linking failed: %w", err)
	}
	return nil
}
