package core

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a severity filter. Levels are totally ordered from Off (nothing
// passes) to Trace (everything passes); a record passes a filter when its
// level is less than or equal to the filter.
type Level int8

const (
	// OffLevel disables logging entirely
	OffLevel Level = iota
	// ErrorLevel for error messages
	ErrorLevel
	// WarnLevel for warning messages
	WarnLevel
	// InfoLevel for general informational messages
	InfoLevel
	// DebugLevel for detailed debugging information
	DebugLevel
	// TraceLevel for very fine-grained tracing
	TraceLevel
)

// MaxLevel is the most verbose level.
const MaxLevel = TraceLevel

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errors.New("invalid log level")

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case OffLevel:
		return "OFF"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Letter returns the single-letter code used by glog-style headers.
func (l Level) Letter() byte {
	switch l {
	case ErrorLevel:
		return 'E'
	case WarnLevel:
		return 'W'
	case InfoLevel:
		return 'I'
	case DebugLevel:
		return 'D'
	case TraceLevel:
		return 'T'
	default:
		return '?'
	}
}

// ParseLevel converts a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return OffLevel, nil
	case "error":
		return ErrorLevel, nil
	case "warn":
		return WarnLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	case "trace":
		return TraceLevel, nil
	default:
		return OffLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}
