package zaphandler

import (
	"math"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/pipelog/core"
	"github.com/philipp01105/pipelog/handler"
)

// Core implements zapcore.Core on top of a handler.Emitter.
type Core struct {
	emitter handler.Emitter
	target  string
	fields  []core.Field
}

var _ zapcore.Core = (*Core)(nil)

// New creates a Core emitting under target unless the zap logger is named.
func New(e handler.Emitter, target string) *Core {
	return &Core{emitter: e, target: target}
}

// Enabled reports whether any target accepts lvl. The exact per-target
// decision is made in Check.
func (c *Core) Enabled(lvl zapcore.Level) bool {
	return ToCoreLevel(lvl) <= c.emitter.MaxLevel()
}

// With returns a Core that adds fields to every entry.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	newFields := make([]core.Field, len(c.fields), len(c.fields)+len(fields))
	copy(newFields, c.fields)
	return &Core{
		emitter: c.emitter,
		target:  c.target,
		fields:  appendFields(newFields, fields),
	}
}

// Check adds c to ce when the entry's target accepts its level.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.emitter.Enabled(c.targetOf(ent), ToCoreLevel(ent.Level)) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write emits ent with c's fields followed by fields.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	rec := core.GetRecord()
	defer core.PutRecord(rec)

	rec.Time = ent.Time
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	rec.Level = ToCoreLevel(ent.Level)
	rec.Target = c.targetOf(ent)
	rec.Message = ent.Message
	rec.Fields = append(rec.Fields, c.fields...)
	rec.Fields = appendFields(rec.Fields, fields)
	if ent.Caller.Defined {
		rec.Caller = core.CallerInfo{
			File:      ent.Caller.File,
			ShortFile: filepath.Base(ent.Caller.File),
			Line:      ent.Caller.Line,
			Function:  ent.Caller.Function,
			Defined:   true,
		}
	}

	c.emitter.Emit(rec)
	if ent.Level > zapcore.ErrorLevel {
		c.emitter.Flush()
	}
	return nil
}

// Sync flushes the pipeline.
func (c *Core) Sync() error {
	c.emitter.Flush()
	return nil
}

func (c *Core) targetOf(ent zapcore.Entry) string {
	if ent.LoggerName != "" {
		return ent.LoggerName
	}
	return c.target
}

// ToCoreLevel converts a zapcore.Level to a core.Level.
func ToCoreLevel(lvl zapcore.Level) core.Level {
	switch {
	case lvl >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case lvl == zapcore.WarnLevel:
		return core.WarnLevel
	case lvl == zapcore.InfoLevel:
		return core.InfoLevel
	case lvl == zapcore.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendFields converts zap fields, keeping their order. Types without a
// direct counterpart go through zap's map encoder and render via fmt.
func appendFields(dst []core.Field, fields []zapcore.Field) []core.Field {
	for _, f := range fields {
		switch f.Type {
		case zapcore.SkipType:
		case zapcore.StringType:
			dst = append(dst, core.Field{Key: f.Key, Type: core.StringType, Str: f.String})
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
			dst = append(dst, core.Field{Key: f.Key, Type: core.Int64Type, Int64: f.Integer})
		case zapcore.BoolType:
			dst = append(dst, core.Field{Key: f.Key, Type: core.BoolType, Int64: f.Integer})
		case zapcore.Float64Type:
			dst = append(dst, core.Field{Key: f.Key, Type: core.Float64Type, Float64: math.Float64frombits(uint64(f.Integer))})
		case zapcore.Float32Type:
			dst = append(dst, core.Field{Key: f.Key, Type: core.Float64Type, Float64: float64(math.Float32frombits(uint32(f.Integer)))})
		case zapcore.DurationType:
			dst = append(dst, core.Field{Key: f.Key, Type: core.DurationType, Int64: f.Integer})
		case zapcore.TimeType:
			dst = append(dst, core.Field{Key: f.Key, Type: core.TimeType, Int64: f.Integer})
		case zapcore.TimeFullType:
			t, _ := f.Interface.(time.Time)
			dst = append(dst, core.Field{Key: f.Key, Type: core.TimeType, Int64: t.UnixNano()})
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				dst = append(dst, core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()})
			}
		default:
			enc := zapcore.NewMapObjectEncoder()
			f.AddTo(enc)
			keys := make([]string, 0, len(enc.Fields))
			for k := range enc.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				dst = append(dst, core.Field{Key: k, Type: core.AnyType, Any: enc.Fields[k]})
			}
		}
	}
	return dst
}
