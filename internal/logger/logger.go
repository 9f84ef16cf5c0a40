// Package logger builds the zerolog logger used by the CLI and the library.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/pg2hda/internal/config"
)

// Init creates a logger from cfg. The returned close function releases the
// log file when Output is "file" and is a no-op otherwise.
func Init(cfg config.LogConfig) (zerolog.Logger, func() error, error) {
	nop := func() error { return nil }

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nop, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var output io.Writer
	closeFn := nop
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return zerolog.Nop(), nop, errors.New("log output file requires a file path")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closeFn = f.Close
	default:
		return zerolog.Nop(), nop, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	return New(output, cfg.Format, level), closeFn, nil
}

// New returns a logger writing to w at level. Format "console" selects the
// human readable writer; anything else writes JSON lines.
func New(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
