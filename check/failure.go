package check

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rediwo/redi-debug/logger"
)

var (
	// ErrCheckFailed is the cause of every Failure
	ErrCheckFailed = errors.New("check failed")

	// ErrOutOfMemory is the cause of a Failure returned by Mem
	ErrOutOfMemory = errors.Wrap(ErrCheckFailed, "out of memory")
)

const outOfMemoryMessage = "Out of memory."

// Failure describes a condition that did not hold
type Failure struct {
	Level   logger.LogLevel
	Message string
	File    string
	Line    int

	cause error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithFailure wraps parent with a Failure reported at the given call site
func WithFailure(parent error, level logger.LogLevel, file string, line int, message string) error {
	return &Failure{
		Level:   level,
		Message: message,
		File:    file,
		Line:    line,
		cause:   errors.WithStack(parent),
	}
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// StackTrace returns the stack captured when the check failed
func (f *Failure) StackTrace() errors.StackTrace {
	if st, ok := f.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Format supports %+v, which adds the call site and the captured stack
func (f *Failure) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s (%s:%d)", f.Message, f.File, f.Line)
			f.StackTrace().Format(s, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, f.Message)
	case 'q':
		fmt.Fprintf(s, "%q", f.Message)
	}
}

// IsFailure reports whether err is or wraps a Failure
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	var f *Failure
	return errors.As(err, &f)
}

// IsOutOfMemory reports whether err was produced by a failed Mem check
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}
