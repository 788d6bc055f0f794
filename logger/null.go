package logger

import (
	"fmt"
	"io"
	"os"
)

// NullLogger is a logger that does nothing
type NullLogger struct {
	level LogLevel
}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{level: LogLevelError}
}

func (n *NullLogger) Trace(format string, args ...any) {}
func (n *NullLogger) Debug(format string, args ...any) {}
func (n *NullLogger) Info(format string, args ...any)  {}
func (n *NullLogger) Warn(format string, args ...any)  {}
func (n *NullLogger) Error(format string, args ...any) {}

func (n *NullLogger) Log(skip int, level LogLevel, format string, args ...any)               {}
func (n *NullLogger) Emit(level LogLevel, file string, line int, format string, args ...any) {}
func (n *NullLogger) Enabled(level LogLevel) bool                                            { return false }

func (n *NullLogger) SetLevel(level LogLevel) {
	n.level = level
}

func (n *NullLogger) GetLevel() LogLevel {
	return n.level
}

func (n *NullLogger) SetOutput(w io.Writer) {}

// SetOutputFile checks that path can be opened for appending, then discards
// it; records are still dropped.
func (n *NullLogger) SetOutputFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return f.Close()
}
