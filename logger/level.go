package logger

import "strings"

// LogLevel represents the severity of a log record.
// Levels are ordered; a record passes when its level is at or above the threshold.
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{
	LogLevelTrace: "TRACE",
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

// String returns the name written between brackets in a log line
func (l LogLevel) String() string {
	if l < LogLevelTrace || l > LogLevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Levels returns every level in ascending order
func Levels() []LogLevel {
	return []LogLevel{LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
}

// ParseLogLevel parses a level name, ignoring case.
// Unknown names return LogLevelTrace and false.
func ParseLogLevel(level string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LogLevelTrace, true
	case "debug":
		return LogLevelDebug, true
	case "info":
		return LogLevelInfo, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "error":
		return LogLevelError, true
	default:
		return LogLevelTrace, false
	}
}
