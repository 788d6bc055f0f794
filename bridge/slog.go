package bridge

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rediwo/redi-debug/logger"
)

// SlogHandler is a slog.Handler backed by a logger.Logger
type SlogHandler struct {
	target logger.Logger
	prefix string // open groups, dot separated
	attrs  string // attributes from WithAttrs, already rendered
}

// NewSlogHandler creates a handler writing to l
func NewSlogHandler(l logger.Logger) *SlogHandler {
	return &SlogHandler{target: l}
}

// FromSlogLevel maps a slog level onto a LogLevel
func FromSlogLevel(level slog.Level) logger.LogLevel {
	switch {
	case level < slog.LevelDebug:
		return logger.LogLevelTrace
	case level < slog.LevelInfo:
		return logger.LogLevelDebug
	case level < slog.LevelWarn:
		return logger.LogLevelInfo
	case level < slog.LevelError:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelError
	}
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.target.Enabled(FromSlogLevel(level))
}

func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	file, line := "???", 0
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file, line = filepath.Base(frame.File), frame.Line
		}
	}

	h.target.Emit(FromSlogLevel(r.Level), file, line, "%s", b.String())
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	clone := *h
	clone.attrs = b.String()
	return &clone
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, prefix, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}
