// Package logger provides the optional debug log for the session's event
// loop. Logging is off unless a file path is given; hosts own the terminal,
// so nothing is ever written to stdout or stderr.
package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog instance together with its file handle.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// Disabled returns a logger that drops everything.
func Disabled() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// NewFile creates a logger appending to path.
func NewFile(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	zl := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &Logger{zl: zl, file: f}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Refresh logs one diff-and-decorate cycle.
func (l *Logger) Refresh(hunks, origMarkers, modMarkers int) {
	l.zl.Debug().
		Int("hunks", hunks).
		Int("original_markers", origMarkers).
		Int("modified_markers", modMarkers).
		Msg("refresh")
}

// Merge logs one executed merge.
func (l *Logger) Merge(line int, side, direction string) {
	l.zl.Debug().
		Int("line", line).
		Str("side", side).
		Str("direction", direction).
		Msg("merge")
}

// Event logs a generic session event.
func (l *Logger) Event(msg string) {
	l.zl.Debug().Msg(msg)
}

// Error logs a failure that was swallowed as a no-op.
func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}
