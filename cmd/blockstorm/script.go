package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/logging"
	"github.com/dshills/blockstorm/internal/script"
)

func newScriptCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "script FILE.lua",
		Short: "Run a Lua script against a new document and print its blocks",
		Long: `Run a Lua script against a document holding one empty block, then
print every block as tag, flag and content separated by tabs. Line breaks
and tabs inside content are escaped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, os.Environ())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Script.Timeout
			}
			return runScript(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args[0], timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", script.DefaultTimeout, "abort the script after this long (0 disables)")
	return cmd
}

func runScript(ctx context.Context, out, errOut io.Writer, cfg *config.Config, path string, timeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: errOut,
		Prefix: "blockstorm",
	})
	store := document.New(
		document.WithDefaultTag(block.Tag(cfg.Editor.DefaultTag)),
		document.WithLogger(logger),
	)
	rt := script.New(store,
		script.WithTimeout(timeout),
		script.WithOutput(out),
		script.WithLogger(logger),
	)
	defer rt.Close()

	if err := rt.RunFile(ctx, path); err != nil {
		return err
	}
	return printBlocks(out, store.Snapshot())
}

var contentEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`)

// printBlocks writes one line per block: tag, flag and escaped content.
func printBlocks(w io.Writer, snap *document.Snapshot) error {
	for _, b := range snap.Blocks() {
		if _, err := fmt.Fprintf(w, "%s\t%t\t%s\n", b.Tag, b.Flag, contentEscaper.Replace(b.Content)); err != nil {
			return err
		}
	}
	return nil
}
