// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mongotesting/contacts-service/internal/config"
)

// New builds a logger writing to w according to cfg.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == config.LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Setup replaces log.Logger with a logger on stderr built from cfg and
// returns it.
func Setup(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := New(cfg, os.Stderr)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	return logger, nil
}
