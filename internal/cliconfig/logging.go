package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = NewLogger(os.Stderr, zerolog.InfoLevel)
}

// Logger returns the package logger (console output on stderr).
func Logger() zerolog.Logger {
	return logger
}

// NewLogger builds a console logger writing to w at the given level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a log level name; an empty name means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(name)
}
