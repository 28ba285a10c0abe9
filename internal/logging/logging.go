// Package logging builds the charmbracelet loggers shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Prefix string
}

// ParseLevel resolves a level name.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// New creates a timestamped logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	}), nil
}

// Stderr creates a logger on standard error.
func Stderr(opts Options) (*log.Logger, error) {
	return New(os.Stderr, opts)
}

// File creates a logger appending to path, creating parent directories.
// The returned closer releases the file.
func File(path string, opts Options) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
