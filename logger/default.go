package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// flusher is implemented by buffered destinations such as *bufio.Writer
type flusher interface {
	Flush() error
}

// DefaultLogger is the default logger implementation.
// It is safe for concurrent use; each record is written with a single Write call.
// The zero value logs every level to standard error.
type DefaultLogger struct {
	mu    sync.RWMutex
	level LogLevel
	out   io.Writer
	file  *os.File // opened by SetOutputFile, owned by the logger
	err   error
	now   func() time.Time
}

// NewDefaultLogger creates a logger that writes every level to standard error
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		level: LogLevelTrace,
		out:   os.Stderr,
		now:   time.Now,
	}
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Enabled reports whether a record at level would be written
func (l *DefaultLogger) Enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// SetOutput sets the output writer. A nil writer restores standard error.
// A file previously opened by SetOutputFile is closed.
func (l *DefaultLogger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.closeFile()
	l.out = w
	l.err = nil
}

// SetOutputFile opens path for appending, creating it if needed, and sends
// all later records there. On failure the current destination is kept.
func (l *DefaultLogger) SetOutputFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.closeFile()
	l.out = f
	l.file = f
	l.err = nil
	return nil
}

// Close closes a file opened by SetOutputFile and restores standard error
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.closeFile()
	l.out = os.Stderr
	l.err = nil
	return err
}

// Err returns the first write error since the destination was last set
func (l *DefaultLogger) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *DefaultLogger) closeFile() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Emit writes a record for the given call site if level passes the threshold
func (l *DefaultLogger) Emit(level LogLevel, file string, line int, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	if l.out == nil {
		l.out = os.Stderr
	}
	if l.now == nil {
		l.now = time.Now
	}

	record := Record{
		Time:    l.now(),
		Level:   level,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}

	_, err := io.WriteString(l.out, FormatRecord(record))
	if err == nil {
		if f, ok := l.out.(flusher); ok {
			err = f.Flush()
		}
	}
	if err != nil && l.err == nil {
		l.err = err
	}
}

// Log logs a message with the call site skip frames above the caller of Log
func (l *DefaultLogger) Log(skip int, level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	file, line := CallSite(skip + 1)
	l.Emit(level, file, line, format, args...)
}

// Trace logs a trace message
func (l *DefaultLogger) Trace(format string, args ...any) {
	l.Log(1, LogLevelTrace, format, args...)
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.Log(1, LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.Log(1, LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.Log(1, LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.Log(1, LogLevelError, format, args...)
}
