package logger

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/pipelog/core"
)

// ErrAlreadyInstalled is returned by Install after the first successful call.
var ErrAlreadyInstalled = errors.New("logger: global logger already installed")

var (
	installMu  sync.Mutex
	installed  atomic.Pointer[Logger]
	maxLevel   atomic.Int32
	fallback   *Logger
	fallbackMu sync.Mutex
)

func init() {
	maxLevel.Store(int32(core.ErrorLevel))
}

// Install makes l the process-wide logger used by Default and the
// package-level functions, and publishes its most verbose level as
// MaxLevel. It succeeds once per process; the installed Logger is never
// replaced or torn down.
func Install(l *Logger) error {
	if l == nil {
		return errors.New("logger: cannot install a nil logger")
	}
	installMu.Lock()
	defer installMu.Unlock()
	if installed.Load() != nil {
		return ErrAlreadyInstalled
	}
	maxLevel.Store(int32(l.MaxLevel()))
	installed.Store(l)
	return nil
}

// MaxLevel returns the global threshold: the most verbose level any target
// of the installed logger accepts. Before Install it is ErrorLevel, matching
// the fallback logger.
func MaxLevel() Level {
	return Level(maxLevel.Load())
}

// Default returns the installed logger. Before Install it returns a
// fallback that writes errors only, in glog format, to os.Stderr.
func Default() *Logger {
	if l := installed.Load(); l != nil {
		return l
	}
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if fallback == nil {
		fallback = NewBuilder().Build()
	}
	return fallback
}

// Package-level convenience functions using the default logger. Each
// checks MaxLevel before touching the logger.

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	if core.TraceLevel > MaxLevel() {
		return
	}
	Default().log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	if core.DebugLevel > MaxLevel() {
		return
	}
	Default().log(core.DebugLevel, msg, fields)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	if core.InfoLevel > MaxLevel() {
		return
	}
	Default().log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	if core.WarnLevel > MaxLevel() {
		return
	}
	Default().log(core.WarnLevel, msg, fields)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().log(core.ErrorLevel, msg, fields)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	if core.DebugLevel > MaxLevel() {
		return
	}
	Default().log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	if core.InfoLevel > MaxLevel() {
		return
	}
	Default().log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	if core.WarnLevel > MaxLevel() {
		return
	}
	Default().log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Named returns the default logger bound to target
func Named(target string) *Logger {
	return Default().Named(target)
}

// Flush waits until everything logged through the default logger has
// reached its sink
func Flush() {
	Default().Flush()
}
