// Package logging builds the zerolog logger used by the gid service.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lzww0608/gid/internal/config"
)

// New creates a logger writing to w with the configured level and format.
// Unknown levels fall back to info.
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
