// Package logging sets up the file logger. The terminal belongs to the UI,
// so log output never goes to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New opens (appending) the log file at path and returns a logger writing to
// it. An empty path yields a logger that discards everything. The returned
// closer must be closed on shutdown.
func New(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return newLogger(io.Discard, lvl), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, lvl), f, nil
}

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "todo",
	})
}

// ParseLevel maps a config level name to a log level. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
