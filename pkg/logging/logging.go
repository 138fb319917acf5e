// Package logging builds the diagnostic logger for vcd.
//
// The terminal belongs to the navigator while it runs, so log lines only go
// to a file. Without a file, and without VCD_DEBUG, logging is disabled:
//
//	VCD_DEBUG=1 vcd            # debug level, written to $TMPDIR/vcd-debug.log
//	vcd --log-file /tmp/vcd.log
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// Options selects where and how much to log.
type Options struct {
	File  string // Log file path; empty disables logging unless Debug is set
	Level string // trace, debug, info, warn or error
	Debug bool   // Forces debug level and a default file
}

// DebugFile is where debug logs go when no file is configured.
func DebugFile() string {
	return filepath.Join(os.TempDir(), "vcd-debug.log")
}

// New returns a logger for opts and the closer for its sink. The closer is
// never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	file := opts.File
	if file == "" && opts.Debug {
		file = DebugFile()
	}
	if file == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if opts.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a timestamped logger writing JSON lines to w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Empty means DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
