package sloghandler

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/philipp01105/pipelog/core"
	"github.com/philipp01105/pipelog/handler"
)

// LevelTrace is the slog level mapped to core.TraceLevel. Any level below
// slog.LevelDebug maps to trace.
const LevelTrace = slog.Level(-8)

// Handler implements slog.Handler on top of a handler.Emitter.
type Handler struct {
	emitter handler.Emitter
	target  string
	attrs   []core.Field
	group   string
}

// New creates a slog.Handler emitting every record under target.
func New(e handler.Emitter, target string) *Handler {
	return &Handler{
		emitter: e,
		target:  target,
	}
}

// Enabled reports whether the emitter accepts records at level for the
// handler's target.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.emitter.Enabled(h.target, ToCoreLevel(level))
}

// Handle converts record to a core.Record and emits it.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	rec := core.GetRecord()
	defer core.PutRecord(rec)

	rec.Time = record.Time
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	rec.Level = ToCoreLevel(record.Level)
	rec.Target = h.target
	rec.Message = record.Message
	rec.Fields = append(rec.Fields, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		rec.Fields = appendAttr(rec.Fields, h.group, a)
		return true
	})
	if record.PC != 0 {
		rec.Caller = callerFromPC(record.PC)
	}

	h.emitter.Emit(rec)
	return nil
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newAttrs := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, h.group, a)
	}
	return &Handler{
		emitter: h.emitter,
		target:  h.target,
		attrs:   newAttrs,
		group:   h.group,
	}
}

// WithGroup returns a new Handler whose later attributes are keyed under
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}
	return &Handler{
		emitter: h.emitter,
		target:  h.target,
		attrs:   h.attrs,
		group:   newGroup,
	}
}

// ToCoreLevel converts a slog.Level to a core.Level.
func ToCoreLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr appends a as one or more fields, flattening groups.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}

func callerFromPC(pc uintptr) core.CallerInfo {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}
