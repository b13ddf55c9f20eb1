package handler

import (
	"github.com/philipp01105/pipelog/core"
)

// Emitter is the contract front-ends (slog, zap) use to feed records into a
// pipeline. *logger.Logger implements it.
type Emitter interface {
	// Enabled reports whether a record for target at level would be emitted.
	Enabled(target string, level core.Level) bool

	// MaxLevel returns the most verbose level enabled for any target.
	MaxLevel() core.Level

	// Emit filters, renders and delivers rec. The caller keeps ownership of
	// rec; Emit does not retain it.
	Emit(rec *core.Record)

	// Flush waits until everything emitted so far has reached the sink.
	Flush()
}
