package logger

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[(TRACE|DEBUG|INFO|WARN|ERROR)\] \(([^:]+):(\d+)\) (.*)$`)

func newBufferLogger() (*DefaultLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewDefaultLogger()
	l.SetOutput(&buf)
	return l, &buf
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestDefaultLogger(t *testing.T) {
	logger, buf := newBufferLogger()

	tests := []struct {
		level    LogLevel
		logFunc  func(string, ...any)
		message  string
		expected string
	}{
		{LogLevelTrace, logger.Trace, "Trace message", "[TRACE]"},
		{LogLevelDebug, logger.Debug, "Debug message", "[DEBUG]"},
		{LogLevelInfo, logger.Info, "Info message", "[INFO]"},
		{LogLevelWarn, logger.Warn, "Warn message", "[WARN]"},
		{LogLevelError, logger.Error, "Error message", "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()

			tt.logFunc(tt.message)

			output := buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got %q", tt.expected, output)
			}
			if !strings.Contains(output, tt.message) {
				t.Errorf("Expected output to contain message %q, got %q", tt.message, output)
			}
		})
	}
}

func TestDefaultsPassEverythingToStderr(t *testing.T) {
	logger := NewDefaultLogger()
	assert.Equal(t, LogLevelTrace, logger.GetLevel())
	assert.Equal(t, os.Stderr, logger.out)
	for _, level := range Levels() {
		assert.True(t, logger.Enabled(level), level.String())
	}
}

func TestLogLevel(t *testing.T) {
	for _, min := range Levels() {
		for _, level := range Levels() {
			t.Run(min.String()+"/"+level.String(), func(t *testing.T) {
				logger, buf := newBufferLogger()
				logger.SetLevel(min)

				logger.Emit(level, "f.go", 1, "message")

				got := lines(buf.String())
				if level < min {
					assert.Empty(t, got)
					return
				}
				require.Len(t, got, 1)
				assert.Regexp(t, linePattern, got[0])
			})
		}
	}
}

func TestErrorThresholdSuppressesLowerLevels(t *testing.T) {
	logger, buf := newBufferLogger()
	logger.SetLevel(LogLevelError)

	logger.Trace("trace")
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	assert.Zero(t, buf.Len())

	logger.Error("error")
	got := lines(buf.String())
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "[ERROR]")
}

func TestThresholdReadAtCallTime(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.SetLevel(LogLevelWarn)
	logger.Info("dropped")
	logger.SetLevel(LogLevelInfo)
	logger.Info("kept")

	got := lines(buf.String())
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "kept")
}

func TestWireFormat(t *testing.T) {
	logger, buf := newBufferLogger()
	logger.now = func() time.Time {
		return time.Date(2024, time.May, 1, 13, 37, 5, 0, time.Local)
	}

	logger.Emit(LogLevelWarn, "server.go", 42, "disk %d%% full", 93)

	assert.Equal(t, "2024-05-01 13:37:05 [WARN] (server.go:42) disk 93% full\n", buf.String())
}

func TestCallSite(t *testing.T) {
	logger, buf := newBufferLogger()

	_, _, line, _ := runtime.Caller(0)
	logger.Info("here")

	m := linePattern.FindStringSubmatch(strings.TrimSuffix(buf.String(), "\n"))
	require.NotNil(t, m, buf.String())
	assert.Equal(t, "logger_test.go", m[2])
	assert.Equal(t, strconv.Itoa(line+1), m[3])
	assert.Equal(t, "here", m[4])
}

func TestLogSkip(t *testing.T) {
	logger, buf := newBufferLogger()

	helper := func() {
		logger.Log(1, LogLevelInfo, "from helper")
	}

	_, _, line, _ := runtime.Caller(0)
	helper()

	assert.Contains(t, buf.String(), "(logger_test.go:"+strconv.Itoa(line+1)+")")
}

func TestSetOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.log")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

	logger, buf := newBufferLogger()
	require.NoError(t, logger.SetOutputFile(path))
	defer logger.Close()

	logger.Info("to file %d", 1)
	logger.Error("to file %d", 2)

	assert.Zero(t, buf.Len(), "previous destination must not receive records")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	got := lines(string(content))
	require.Len(t, got, 3)
	assert.Equal(t, "existing", got[0])
	assert.Contains(t, got[1], "[INFO]")
	assert.Contains(t, got[1], "to file 1")
	assert.Contains(t, got[2], "to file 2")
}

func TestSetOutputFileReplacesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	logger := NewDefaultLogger()
	require.NoError(t, logger.SetOutputFile(first))
	logger.Info("one")
	require.NoError(t, logger.SetOutputFile(second))
	logger.Info("two")
	require.NoError(t, logger.Close())

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Len(t, lines(string(a)), 1)
	assert.Contains(t, string(a), "one")
	assert.Len(t, lines(string(b)), 1)
	assert.Contains(t, string(b), "two")
}

func TestSetOutputFileFailureKeepsDestination(t *testing.T) {
	logger, buf := newBufferLogger()

	err := logger.SetOutputFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	logger.Info("still here")
	assert.Contains(t, buf.String(), "still here")
}

func TestCloseRestoresStderr(t *testing.T) {
	logger := NewDefaultLogger()
	require.NoError(t, logger.SetOutputFile(filepath.Join(t.TempDir(), "x.log")))
	require.NotNil(t, logger.file)

	require.NoError(t, logger.Close())
	assert.Nil(t, logger.file)
	assert.Equal(t, os.Stderr, logger.out)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteErrorIsRetained(t *testing.T) {
	logger := NewDefaultLogger()
	logger.SetOutput(failingWriter{})

	assert.NotPanics(t, func() {
		logger.Error("lost")
		logger.Error("lost again")
	})
	require.Error(t, logger.Err())
	assert.Equal(t, "disk full", logger.Err().Error())

	logger.SetOutput(&bytes.Buffer{})
	assert.NoError(t, logger.Err())
}

func TestCloseClearsWriteError(t *testing.T) {
	logger := NewDefaultLogger()
	logger.SetOutput(failingWriter{})
	logger.Error("lost")
	require.Error(t, logger.Err())

	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Err())
}

func TestZeroValueLogger(t *testing.T) {
	var logger DefaultLogger
	assert.Equal(t, LogLevelTrace, logger.GetLevel())
	assert.NotPanics(t, func() { logger.Debug("to stderr") })

	var buf bytes.Buffer
	var other DefaultLogger
	other.SetOutput(&buf)
	other.Info("zero %s", "value")
	assert.Regexp(t, linePattern, strings.TrimSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "[INFO] (logger_test.go:")
}

func TestEveryRecordIsFlushed(t *testing.T) {
	var underlying bytes.Buffer
	w := bufio.NewWriterSize(&underlying, 4096)

	logger := NewDefaultLogger()
	logger.SetOutput(w)
	logger.Info("visible immediately")

	assert.Contains(t, underlying.String(), "visible immediately")
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	logger, buf := newBufferLogger()

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				logger.Info("worker %d line %d", id, j)
			}
		}(i)
	}
	wg.Wait()

	got := lines(buf.String())
	require.Len(t, got, workers*perWorker)
	for _, line := range got {
		assert.Regexp(t, linePattern, line)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"trace", LogLevelTrace, true},
		{"TRACE", LogLevelTrace, true},
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{"info", LogLevelInfo, true},
		{" Info ", LogLevelInfo, true},
		{"warn", LogLevelWarn, true},
		{"warning", LogLevelWarn, true},
		{"WARN", LogLevelWarn, true},
		{"error", LogLevelError, true},
		{"ERROR", LogLevelError, true},
		{"invalid", LogLevelTrace, false},
		{"", LogLevelTrace, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, ok := ParseLogLevel(tt.input)
			if result != tt.expected || ok != tt.ok {
				t.Errorf("ParseLogLevel(%q) = %v, %v, want %v, %v", tt.input, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelTrace, "TRACE"},
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(-1), "UNKNOWN"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, result, tt.expected)
			}
		})
	}
}

func TestLevelsAreOrdered(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i])
	}
}

func TestGetLevelColor(t *testing.T) {
	assert.Equal(t, ColorRed, GetLevelColor(LogLevelError))
	assert.Equal(t, ColorCyan, GetLevelColor(LogLevelTrace))
	assert.Equal(t, ColorReset, GetLevelColor(LogLevel(42)))
	assert.Equal(t, ColorYellow+"WARN"+ColorReset, Colorize(LogLevelWarn, "WARN"))
}

func TestNullLogger(t *testing.T) {
	var l Logger = NewNullLogger()

	assert.NotPanics(t, func() {
		l.Error("nothing")
		l.Emit(LogLevelError, "f.go", 1, "nothing")
	})
	assert.False(t, l.Enabled(LogLevelError))

	err := l.SetOutputFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.NoError(t, l.SetOutputFile(filepath.Join(t.TempDir(), "x.log")))

	l.SetLevel(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, l.GetLevel())
}
