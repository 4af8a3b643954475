// Package logging builds the diagnostic logger. Diagnostics always go to
// stderr so stdout carries only scan results.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level and rendering.
type Config struct {
	Level string
	Debug bool
	// Console renders human-readable lines instead of JSON.
	Console bool
	NoColor bool
}

// New returns a logger writing to w. Debug overrides Level.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	out := w
	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
