package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/blockstorm/internal/app"
)

func newEditCmd() *cobra.Command {
	var (
		metricsAddr string
		importPath  string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the editor in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")

			var paragraphs []string
			if importPath != "" {
				var err error
				if paragraphs, err = readParagraphs(importPath); err != nil {
					return err
				}
			}
			return runEdit(app.Options{
				ConfigPath:  configPath,
				Environ:     os.Environ(),
				LogLevel:    logLevel,
				MetricsAddr: metricsAddr,
			}, paragraphs)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&importPath, "import", "", "append the paragraphs of a plain-text file")
	return cmd
}

func runEdit(opts app.Options, paragraphs []string) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	if len(paragraphs) > 0 {
		if res := application.Import(paragraphs...); res.IsError() {
			application.Logger().Warn("import: %v", res.Err)
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Stop()
		}
	}()

	return application.Run()
}

// readParagraphs splits a plain-text file at blank lines. Lines inside a
// paragraph keep their line breaks. Lines may be of any length.
func readParagraphs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		paragraphs []string
		lines      []string
	)
	flush := func() {
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
			lines = lines[:0]
		}
	}
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) == "" {
				flush()
			} else {
				lines = append(lines, line)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	flush()
	return paragraphs, nil
}
