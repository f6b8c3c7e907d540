package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/blockstorm/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blockstorm",
		Short: "A block-structured rich-text editor for the terminal",
		Long: `Blockstorm edits documents made of typed blocks: paragraphs,
headings, quotes and code. Type the command key at the start of a line to
change a block's type, select text to promote it into its own block, and
drag a block's handle to reorder it.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newEditCmd(), newScriptCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration from the --config file,
// BLOCKSTORM_* variables and the --log-level flag.
func loadConfig(cmd *cobra.Command, environ []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
