// Package debug exposes leveled logging and checks to redi scripts as
// require('redi/debug').
package debug

import (
	"fmt"
	"path/filepath"

	js "github.com/dop251/goja"
	"github.com/rediwo/redi-debug/check"
	"github.com/rediwo/redi-debug/logger"
	"github.com/rediwo/redi/modules"
)

const moduleName = "redi/debug"

// DebugModule binds a logger to a JavaScript runtime
type DebugModule struct {
	log logger.Logger
}

// Auto-register on import
func init() {
	modules.RegisterModule(moduleName, initDebugModule)
}

func initDebugModule(config modules.ModuleConfig) error {
	if config.VM == nil {
		return fmt.Errorf("VM is required for debug module")
	}

	config.Registry.RegisterNativeModule(moduleName, Loader(nil))
	return nil
}

// Loader returns a native module loader writing to l.
// A nil l follows the global logger.
func Loader(l logger.Logger) func(vm *js.Runtime, module *js.Object) {
	m := &DebugModule{log: l}
	return func(vm *js.Runtime, module *js.Object) {
		exports := vm.NewObject()

		exports.Set("trace", m.logMethod(vm, logger.LogLevelTrace))
		exports.Set("debug", m.logMethod(vm, logger.LogLevelDebug))
		exports.Set("info", m.logMethod(vm, logger.LogLevelInfo))
		exports.Set("warn", m.logMethod(vm, logger.LogLevelWarn))
		exports.Set("error", m.logMethod(vm, logger.LogLevelError))

		exports.Set("setLevel", m.setLevel(vm))
		exports.Set("getLevel", func(call js.FunctionCall) js.Value {
			return vm.ToValue(m.logger().GetLevel().String())
		})
		exports.Set("setOutputFile", m.setOutputFile(vm))

		exports.Set("check", m.checkMethod(vm, logger.LogLevelError))
		exports.Set("checkDebug", m.checkMethod(vm, logger.LogLevelDebug))
		exports.Set("checkMem", m.checkMem(vm))

		module.Set("exports", exports)
	}
}

func (m *DebugModule) logger() logger.Logger {
	if m.log != nil {
		return m.log
	}
	return logger.GetGlobalLogger()
}

// logMethod creates a printf-style logging function for level
func (m *DebugModule) logMethod(vm *js.Runtime, level logger.LogLevel) func(call js.FunctionCall) js.Value {
	return func(call js.FunctionCall) js.Value {
		l := m.logger()
		if !l.Enabled(level) {
			return js.Undefined()
		}
		file, line := scriptSite(vm)
		l.Emit(level, file, line, "%s", formatArgs(call.Arguments))
		return js.Undefined()
	}
}

func (m *DebugModule) setLevel(vm *js.Runtime) func(call js.FunctionCall) js.Value {
	return func(call js.FunctionCall) js.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("setLevel() requires a level name"))
		}
		name := call.Arguments[0].String()
		level, ok := logger.ParseLogLevel(name)
		if !ok {
			panic(vm.NewTypeError(fmt.Sprintf("unknown log level %q", name)))
		}
		m.logger().SetLevel(level)
		return js.Undefined()
	}
}

func (m *DebugModule) setOutputFile(vm *js.Runtime) func(call js.FunctionCall) js.Value {
	return func(call js.FunctionCall) js.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("setOutputFile() requires a path"))
		}
		if err := m.logger().SetOutputFile(call.Arguments[0].String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return js.Undefined()
	}
}

// checkMethod creates check(cond, fmt, ...args), which throws after logging
func (m *DebugModule) checkMethod(vm *js.Runtime, level logger.LogLevel) func(call js.FunctionCall) js.Value {
	return func(call js.FunctionCall) js.Value {
		if len(call.Arguments) > 0 && call.Arguments[0].ToBoolean() {
			return js.Undefined()
		}
		var rest []js.Value
		if len(call.Arguments) > 1 {
			rest = call.Arguments[1:]
		}
		m.throw(vm, level, check.ErrCheckFailed, formatArgs(rest))
		return js.Undefined()
	}
}

func (m *DebugModule) checkMem(vm *js.Runtime) func(call js.FunctionCall) js.Value {
	return func(call js.FunctionCall) js.Value {
		if len(call.Arguments) > 0 && !js.IsUndefined(call.Arguments[0]) && !js.IsNull(call.Arguments[0]) {
			return js.Undefined()
		}
		m.throw(vm, logger.LogLevelError, check.ErrOutOfMemory, "Out of memory.")
		return js.Undefined()
	}
}

// throw logs message at the script call site and raises it as a JS error
func (m *DebugModule) throw(vm *js.Runtime, level logger.LogLevel, cause error, message string) {
	file, line := scriptSite(vm)
	m.logger().Emit(level, file, line, "%s", message)
	panic(vm.NewGoError(check.WithFailure(cause, level, file, line, message)))
}

// scriptSite returns the innermost script frame that has a source position
func scriptSite(vm *js.Runtime) (string, int) {
	for _, frame := range vm.CaptureCallStack(0, nil) {
		pos := frame.Position()
		if pos.Line <= 0 {
			continue
		}
		if pos.Filename == "" {
			return "<eval>", pos.Line
		}
		return filepath.Base(pos.Filename), pos.Line
	}
	return "???", 0
}

// formatArgs applies the first argument as a format string to the rest
func formatArgs(args []js.Value) string {
	if len(args) == 0 {
		return ""
	}
	format := args[0].String()
	values := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		values = append(values, arg.Export())
	}
	return fmt.Sprintf(format, values...)
}
