package logger

import (
	"github.com/philipp01105/pipelog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	OffLevel   = core.OffLevel
	ErrorLevel = core.ErrorLevel
	WarnLevel  = core.WarnLevel
	InfoLevel  = core.InfoLevel
	DebugLevel = core.DebugLevel
	TraceLevel = core.TraceLevel
)

// ParseLevel converts a level name such as "info" or "WARN" to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
