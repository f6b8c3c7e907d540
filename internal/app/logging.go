package app

import (
	"io"
	"os"

	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/logging"
)

// openLog creates the application logger. The terminal owns stdout and
// stderr, so lines go to the configured file or nowhere.
func openLog(cfg config.LogConfig) (*logging.Logger, io.Closer, error) {
	if cfg.File == "" {
		return logging.Nop(), nil, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Level),
		Output: f,
		Prefix: "blockstorm",
	})
	return logger, f, nil
}
