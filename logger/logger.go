// Package logger provides leveled, line-oriented logging for debugging.
//
// Every record is written as a single line:
//
//	2024-05-01 13:37:00 [WARN] (server.go:42) disk almost full
//
// and flushed before the call returns, so the last lines before a crash are
// always on disk.
package logger

import "io"

// Logger interface defines core logging methods
type Logger interface {
	Trace(format string, args ...any)
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Log records the call site skip frames above the caller of Log.
	Log(skip int, level LogLevel, format string, args ...any)
	// Emit writes a record with an explicit call site.
	Emit(level LogLevel, file string, line int, format string, args ...any)
	Enabled(level LogLevel) bool

	// Configuration
	SetLevel(level LogLevel)
	GetLevel() LogLevel
	SetOutput(w io.Writer)
	SetOutputFile(path string) error
}
