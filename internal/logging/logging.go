// Package logging sets up the diagnostic log. The terminal belongs to the browser, so
// log lines only ever go to a file.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// EnvLogPath names a log file when --log-file is not given.
	EnvLogPath = "TOTERO_LOG"

	permission = 0o664
)

// Log is an open diagnostic log. The zero value is not usable; see Open.
type Log struct {
	Logger zerolog.Logger
	file   *os.File
}

// Close releases the log file, if any.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ResolvePath returns the flag value, falling back to $TOTERO_LOG.
func ResolvePath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvLogPath))
}

// Open appends to path. An empty path yields a disabled logger.
func Open(path string) (*Log, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Log{Logger: zerolog.Nop()}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
	if err != nil {
		return nil, err
	}
	return &Log{Logger: New(zerolog.SyncWriter(f)), file: f}, nil
}

// New builds a timestamped logger on w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
