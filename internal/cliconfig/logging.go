package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// SetLevel applies the configured log level; unknown names keep info.
func SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		logger = logger.Level(lvl)
	}
}
