// Package check turns failed conditions into a log record plus an error.
//
// The early-return form:
//
//	if err := check.That(n > 0, "bad count %d", n); err != nil {
//		return err
//	}
//
// The guarded form runs one recovery function for every failure path:
//
//	err := check.Guard(func(s *check.Scope) error {
//		s.That(n > 0, "bad count %d", n)
//		s.Mem(buf)
//		return nil
//	}, func(err error) {
//		cleanup()
//	})
//
// That and Mem log at ERROR, Debug logs at DEBUG. The record carries the call
// site of the check, not of this package.
package check

import (
	"fmt"
	"reflect"

	"github.com/rediwo/redi-debug/logger"
)

// Checker reports failed checks to a logger
type Checker struct {
	log logger.Logger
}

// New creates a checker that reports to l. A nil l follows the global logger.
func New(l logger.Logger) *Checker {
	return &Checker{log: l}
}

func (c *Checker) logger() logger.Logger {
	if c.log != nil {
		return c.log
	}
	return logger.GetGlobalLogger()
}

// That returns a Failure logged at ERROR when cond is false
func (c *Checker) That(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return c.fail(1, logger.LogLevelError, ErrCheckFailed, format, args...)
}

// Mem returns a Failure logged at ERROR when ptr is nil
func (c *Checker) Mem(ptr any) error {
	if !isNil(ptr) {
		return nil
	}
	return c.fail(1, logger.LogLevelError, ErrOutOfMemory, outOfMemoryMessage)
}

// Debug returns a Failure logged at DEBUG when cond is false
func (c *Checker) Debug(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return c.fail(1, logger.LogLevelDebug, ErrCheckFailed, format, args...)
}

// fail logs and builds a Failure for the call site skip frames above its caller
func (c *Checker) fail(skip int, level logger.LogLevel, cause error, format string, args ...any) *Failure {
	file, line := logger.CallSite(skip + 1)
	message := fmt.Sprintf(format, args...)
	c.logger().Emit(level, file, line, "%s", message)
	return WithFailure(cause, level, file, line, message).(*Failure)
}

var std = New(nil)

// That returns a Failure logged at ERROR to the global logger when cond is false
func That(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return std.fail(1, logger.LogLevelError, ErrCheckFailed, format, args...)
}

// Mem returns a Failure logged at ERROR to the global logger when ptr is nil
func Mem(ptr any) error {
	if !isNil(ptr) {
		return nil
	}
	return std.fail(1, logger.LogLevelError, ErrOutOfMemory, outOfMemoryMessage)
}

// Debug returns a Failure logged at DEBUG to the global logger when cond is false
func Debug(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return std.fail(1, logger.LogLevelDebug, ErrCheckFailed, format, args...)
}

// isNil treats typed nil pointers, maps, slices, channels and funcs as nil
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
