// Package logging builds the structured logger shared by the cubestate
// commands.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestate/internal/config"
)

// New creates a logger writing to w with the level and format from cfg.
// A nil w writes to stderr.
func New(cfg config.LogConfig, w io.Writer) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubestate",
		Level:           level,
	})

	switch cfg.Format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}

	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
