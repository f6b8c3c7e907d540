package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blockstorm %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
