package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/pipelog/core"
)

// Field constructors. Each renders as " key=value" after the message, in
// the same shape the slog and zap bridges produce for their attributes.

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Uint64 creates a uint64 field. Values above math.MaxInt64 are kept
// exact, as slog's KindUint64 attributes are.
func Uint64(key string, val uint64) core.Field {
	if val <= 1<<63-1 {
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	}
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time creates a time field, rendered as RFC 3339
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field, rendered like time.Duration.String
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an "error" field. A nil error renders as an empty value.
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr creates an error field under key, for entries that carry more
// than one error.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Stringer creates a field whose value is val.String(), called only when the
// entry is rendered.
func Stringer(key string, val fmt.Stringer) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}

// Any creates a field rendered with fmt's %v
func Any(key string, val interface{}) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
