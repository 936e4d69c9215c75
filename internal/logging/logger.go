// ABOUTME: Leveled diagnostic logging for the ufo CLI
// ABOUTME: Wraps charmbracelet/log writing to stderr or a log file

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File, when set, receives log output instead of stderr.
	File string
}

// New creates a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
		Prefix:          "ufo",
	}), nil
}

// Open creates a logger from opts. The returned close function releases the
// log file, if any, and is always safe to call.
func Open(opts Options) (*log.Logger, func() error, error) {
	if opts.File == "" {
		logger, err := New(os.Stderr, opts.Level)
		return logger, func() error { return nil }, err
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil { //nolint:gosec // user log directory
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) //nolint:gosec // log file path comes from the user
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, opts.Level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything. Used by tests and library callers.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
