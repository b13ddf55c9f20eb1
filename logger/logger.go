package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/pipelog/core"
	"github.com/philipp01105/pipelog/filter"
	"github.com/philipp01105/pipelog/formatter"
	"github.com/philipp01105/pipelog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// callerDepth is the number of frames between log and the user's call site
// for every exported logging function.
const callerDepth = 2

// Logger filters, renders and delivers log records (immutable). Loggers
// derived with With and Named share the parent's Exchange, so they share
// its sync/async mode.
type Logger struct {
	spec          *filter.Specification
	formatter     formatter.Formatter
	exchange      *handler.Exchange
	target        string
	named         bool
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	now           func() time.Time
}

var _ handler.Emitter = (*Logger)(nil)

// Builder provides a fluent API for building Logger instances
type Builder struct {
	spec          *filter.Specification
	specText      string
	diag          io.Writer
	formatter     formatter.Formatter
	writer        io.Writer
	target        string
	named         bool
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

// NewBuilder creates a new logger builder. Without further options the
// Logger uses spec "" (errors only), the glog format and os.Stderr.
func NewBuilder() *Builder {
	return &Builder{
		diag:   os.Stderr,
		writer: os.Stderr,
	}
}

// WithSpec sets the directive string, e.g. "info,app/store=debug".
// Unparsable directives are reported on the diagnostics writer.
func (b *Builder) WithSpec(spec string) *Builder {
	b.specText = spec
	b.spec = nil
	return b
}

// WithSpecification sets an already compiled specification
func (b *Builder) WithSpecification(spec *filter.Specification) *Builder {
	b.spec = spec
	return b
}

// WithDiagnostics sets where specification diagnostics go (default: os.Stderr)
func (b *Builder) WithDiagnostics(w io.Writer) *Builder {
	b.diag = w
	return b
}

// WithFormatter sets the formatter (default: GoogleFormatter)
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithWriter sets the destination sink (default: os.Stderr)
func (b *Builder) WithWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// WithTarget binds a fixed target instead of the caller's package path
func (b *Builder) WithTarget(target string) *Builder {
	b.target = target
	b.named = true
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips extra frames when resolving the caller, for
// wrappers around the Logger
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// WithCoarseClock timestamps entries with core.CoarseNow instead of
// time.Now, trading sub-millisecond precision for a cheaper hot path
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	spec := b.spec
	if spec == nil {
		spec = filter.CompileWithDiagnostics(b.specText, b.diag)
	}
	f := b.formatter
	if f == nil {
		f = formatter.NewGoogleFormatter(formatter.Config{IncludeCaller: b.includeCaller})
	}
	now := time.Now
	if b.coarseClock {
		core.StartCoarseClock()
		now = core.CoarseNow
	}
	return &Logger{
		spec:          spec,
		formatter:     f,
		exchange:      handler.NewExchange(b.writer),
		target:        b.target,
		named:         b.named,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		now:           now,
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := l.clone()
	c.fields = newFields
	return c
}

// Named returns a Logger that logs under target instead of the caller's
// package path. Named loggers also skip the per-call frame lookup.
func (l *Logger) Named(target string) *Logger {
	c := l.clone()
	c.target = target
	c.named = true
	return c
}

// Target returns the bound target, or "" for loggers that use the caller's
// package path.
func (l *Logger) Target() string {
	if !l.named {
		return ""
	}
	return l.target
}

// Specification returns the compiled directive set
func (l *Logger) Specification() *filter.Specification {
	return l.spec
}

// Enabled reports whether a record for target at level would be emitted
func (l *Logger) Enabled(target string, level core.Level) bool {
	return l.spec.Enabled(target, level)
}

// MaxLevel returns the most verbose level enabled for any target
func (l *Logger) MaxLevel() core.Level {
	return l.spec.Max()
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, fields)
}

// log is the internal logging method; it must be called directly from an
// exported logging function so callerDepth holds.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	// Global threshold first: rejects without resolving the target.
	if level <= core.OffLevel || level > l.spec.Max() {
		return
	}

	target := l.target
	if !l.named {
		target = core.CallerTarget(callerDepth + l.callerSkip)
	}
	if l.spec.GetLevel(target) < level {
		return
	}

	rec := core.GetRecord()
	rec.Time = l.now()
	rec.Level = level
	rec.Target = target
	rec.Message = msg
	if len(l.fields) > 0 {
		rec.Fields = append(rec.Fields, l.fields...)
	}
	if len(fields) > 0 {
		rec.Fields = append(rec.Fields, fields...)
	}
	if l.includeCaller {
		rec.Caller = core.GetCaller(callerDepth + l.callerSkip)
	}

	l.deliver(rec)
	core.PutRecord(rec)
}

// Emit filters, renders and delivers a complete record. It is the entry
// point for front-ends such as the slog and zap bridges; the Logger's own
// fields and target are not applied.
func (l *Logger) Emit(rec *core.Record) {
	if !l.spec.Enabled(rec.Target, rec.Level) || rec.Level <= core.OffLevel {
		return
	}
	l.deliver(rec)
}

// deliver renders rec into a fresh EntryBuf and hands it to the Exchange.
// Truncation is accepted; any other formatter error drops the entry.
func (l *Logger) deliver(rec *core.Record) {
	buf := core.GetEntryBuf()
	defer core.PutEntryBuf(buf)

	if err := l.formatter.Format(rec, buf); err != nil && !errors.Is(err, core.ErrTruncated) {
		return
	}
	entry := buf.Terminate()
	l.exchange.Deliver(entry.Bytes())
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs an error message, drains the pipeline and exits the program
// with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
	l.exchange.DisableAsync()
	osExit(1)
}

// Panic logs an error message and panics
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
	l.exchange.Flush()
	panic(msg)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if core.TraceLevel > l.spec.Max() {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel > l.spec.Max() {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel > l.spec.Max() {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel > l.spec.Max() {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel > l.spec.Max() {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Async switches the Logger's Exchange to async mode until the returned
// scope ends. End must be called on every exit path:
//
//	defer log.Async().End()
//
// Calling Async again before End is a programming error and panics.
func (l *Logger) Async() *AsyncScope {
	l.exchange.EnableAsync()
	return &AsyncScope{exchange: l.exchange}
}

// AsyncScope is an active async mode; see Logger.Async.
type AsyncScope struct {
	exchange *handler.Exchange
	once     sync.Once
}

// End switches back to synchronous mode after everything queued so far was
// written. Only the first call has an effect.
func (s *AsyncScope) End() {
	s.once.Do(s.exchange.DisableAsync)
}

// Flush waits until everything logged so far has reached the sink
func (l *Logger) Flush() {
	l.exchange.Flush()
}

// Stats returns delivery statistics of the Logger's Exchange
func (l *Logger) Stats() handler.Snapshot {
	return l.exchange.Stats()
}

// Close ends async mode, draining queued entries, and closes the sink
// unless it is os.Stdout or os.Stderr
func (l *Logger) Close() error {
	return l.exchange.Close()
}
