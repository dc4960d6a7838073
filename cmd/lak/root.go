package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd wires the cobra CLI surface spec §4.7 names as the
// teacher's hand-rolled flag dispatcher's replacement: `build` and
// `run` are the only subcommands the core language needs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lak",
		Short:         "Lak compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newRunCmd())
	return root
}
