package logger

import (
	"io"
	"sync"
)

// Global logger instance
var (
	globalLogger Logger = NewDefaultLogger()
	globalMu     sync.RWMutex
)

// SetGlobalLogger sets the global logger. A nil logger installs a NullLogger.
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		logger = NewNullLogger()
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the global logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLevel sets the level of the global logger
func SetLevel(level LogLevel) {
	GetGlobalLogger().SetLevel(level)
}

// GetLevel returns the level of the global logger
func GetLevel() LogLevel {
	return GetGlobalLogger().GetLevel()
}

// SetOutput redirects the global logger to w
func SetOutput(w io.Writer) {
	GetGlobalLogger().SetOutput(w)
}

// SetOutputFile redirects the global logger to the file at path
func SetOutputFile(path string) error {
	return GetGlobalLogger().SetOutputFile(path)
}

// Convenience functions using the global logger
func Trace(format string, args ...any) {
	GetGlobalLogger().Log(1, LogLevelTrace, format, args...)
}

func Debug(format string, args ...any) {
	GetGlobalLogger().Log(1, LogLevelDebug, format, args...)
}

func Info(format string, args ...any) {
	GetGlobalLogger().Log(1, LogLevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	GetGlobalLogger().Log(1, LogLevelWarn, format, args...)
}

func Error(format string, args ...any) {
	GetGlobalLogger().Log(1, LogLevelError, format, args...)
}
