package logger

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp layout of every log line
const TimeLayout = "2006-01-02 15:04:05"

// ErrMalformedRecord is returned by ParseRecord for lines that are not log records
var ErrMalformedRecord = errors.New("malformed log record")

// Record is a single log line
type Record struct {
	Time    time.Time
	Level   LogLevel
	File    string
	Line    int
	Message string
}

var recordPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[([A-Z]+)\] \((.+?):(\d+)\) (.*)$`)

// FormatRecord renders r as one line, including the trailing newline
func FormatRecord(r Record) string {
	var b strings.Builder
	b.Grow(len(TimeLayout) + len(r.File) + len(r.Message) + 24)
	b.WriteString(r.Time.Format(TimeLayout))
	b.WriteString(" [")
	b.WriteString(r.Level.String())
	b.WriteString("] (")
	b.WriteString(r.File)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(r.Line))
	b.WriteString(") ")
	b.WriteString(r.Message)
	b.WriteByte('\n')
	return b.String()
}

// ParseRecord parses a line produced by FormatRecord.
// The timestamp is interpreted in the local time zone.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	ts, err := time.ParseInLocation(TimeLayout, m[1], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedRecord, m[1])
	}

	level, ok := ParseLogLevel(m[2])
	if !ok || level.String() != m[2] {
		return Record{}, fmt.Errorf("%w: unknown level %q", ErrMalformedRecord, m[2])
	}

	lineNo, err := strconv.Atoi(m[4])
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad line number %q", ErrMalformedRecord, m[4])
	}

	return Record{
		Time:    ts,
		Level:   level,
		File:    m[3],
		Line:    lineNo,
		Message: m[5],
	}, nil
}

// CallSite reports the base file name and line of a caller.
// skip 0 identifies the caller of CallSite.
func CallSite(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}
