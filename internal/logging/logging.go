// Package logging sets up the global zerolog logger.
//
// A TUI owns the terminal, so the default destination is a JSON log file.
// Logging to stderr is only sensible when stderr is redirected.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects where logs go and how much is written.
type Options struct {
	File    string
	Stderr  bool
	Level   string
	Verbose bool
}

// Init configures log.Logger. The returned function closes the log file
// and must be called before the program exits.
func Init(opts Options) (func(), error) {
	if opts.Stderr && opts.File != "" {
		return nil, fmt.Errorf("log to stderr and log file %q are mutually exclusive", opts.File)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Second
	zerolog.DurationFieldInteger = false

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var (
		out    io.Writer
		closer = func() {}
	)
	switch {
	case opts.Stderr:
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", opts.File, err)
		}
		out = f
		closer = func() { _ = f.Close() }
	default:
		out = io.Discard
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
	return closer, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
