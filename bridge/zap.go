// Package bridge lets code written against zap or log/slog write through a
// logger.Logger, so every line shares the same format and destination.
package bridge

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rediwo/redi-debug/logger"
	"go.uber.org/zap/zapcore"
)

// ZapCore is a zapcore.Core backed by a logger.Logger.
// Enabled levels follow the target's threshold.
type ZapCore struct {
	target logger.Logger
	fields []zapcore.Field
}

// NewZapCore creates a core writing to l. Use zap.AddCaller to get call sites.
func NewZapCore(l logger.Logger) *ZapCore {
	return &ZapCore{target: l}
}

// FromZapLevel maps a zap level onto a LogLevel
func FromZapLevel(level zapcore.Level) logger.LogLevel {
	switch {
	case level < zapcore.DebugLevel:
		return logger.LogLevelTrace
	case level == zapcore.DebugLevel:
		return logger.LogLevelDebug
	case level == zapcore.InfoLevel:
		return logger.LogLevelInfo
	case level == zapcore.WarnLevel:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelError
	}
}

func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.target.Enabled(FromZapLevel(level))
}

func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ZapCore{
		target: c.target,
		fields: make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *ZapCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *ZapCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var b strings.Builder
	if entry.LoggerName != "" {
		b.WriteString(entry.LoggerName)
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)
	appendFields(&b, enc.Fields)

	file, line := "???", 0
	if entry.Caller.Defined {
		file, line = filepath.Base(entry.Caller.File), entry.Caller.Line
	}

	c.target.Emit(FromZapLevel(entry.Level), file, line, "%s", b.String())
	return nil
}

func (c *ZapCore) Sync() error {
	return nil
}

// appendFields writes fields as key=value pairs in key order
func appendFields(b *strings.Builder, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, fields[k])
	}
}
