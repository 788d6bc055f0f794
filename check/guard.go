package check

import "github.com/rediwo/redi-debug/logger"

// Scope is passed to a Guard body. Its checks abort the body on failure.
type Scope struct {
	c *Checker
}

// abort carries a Failure from a Scope check to the Guard that created the Scope
type abort struct {
	scope   *Scope
	failure *Failure
}

// That aborts the body with a Failure logged at ERROR when cond is false
func (s *Scope) That(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(abort{s, s.c.fail(1, logger.LogLevelError, ErrCheckFailed, format, args...)})
}

// Mem aborts the body with a Failure logged at ERROR when ptr is nil
func (s *Scope) Mem(ptr any) {
	if !isNil(ptr) {
		return
	}
	panic(abort{s, s.c.fail(1, logger.LogLevelError, ErrOutOfMemory, outOfMemoryMessage)})
}

// Debug aborts the body with a Failure logged at DEBUG when cond is false
func (s *Scope) Debug(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(abort{s, s.c.fail(1, logger.LogLevelDebug, ErrCheckFailed, format, args...)})
}

// Guard runs body and, if it fails, runs recovery exactly once with the error.
// A failure is a Scope check that did not hold or a non-nil error returned by
// body. recovery may be nil. Panics not raised by this Guard's Scope, including
// checks on the Scope of an enclosing Guard, propagate unchanged.
func (c *Checker) Guard(body func(s *Scope) error, recovery func(err error)) (err error) {
	scope := &Scope{c: c}
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok || a.scope != scope {
				panic(r)
			}
			err = a.failure
		}
		if err != nil && recovery != nil {
			recovery(err)
		}
	}()

	return body(scope)
}

// Guard runs body with checks reported to the global logger
func Guard(body func(s *Scope) error, recovery func(err error)) error {
	return std.Guard(body, recovery)
}
