package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/balkashynov/studylog/internal/config"
)

// Setup builds the process logger from config and installs it as the
// zerolog global. Output goes to stderr so command output stays clean.
func Setup(cfg config.LoggingConfig) zerolog.Logger {
	logger := New(cfg, os.Stderr)
	log.Logger = logger
	return logger
}

// New builds a logger writing to w
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
	}

	// Default to JSON
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
