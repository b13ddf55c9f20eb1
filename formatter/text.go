package formatter

import (
	"time"

	"github.com/philipp01105/pipelog/core"
)

// TextFormatter formats log entries as human-readable text:
//
//	2026-02-18T13:00:00Z [INFO] app/store: message k=v
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.OffLevel:   " [OFF] ",
	core.ErrorLevel: " [ERROR] ",
	core.WarnLevel:  " [WARN] ",
	core.InfoLevel:  " [INFO] ",
	core.DebugLevel: " [DEBUG] ",
	core.TraceLevel: " [TRACE] ",
}

var coloredLevelBrackets = [...]string{
	core.OffLevel:   " [OFF] ",
	core.ErrorLevel: " \x1b[31m[ERROR]\x1b[0m ",
	core.WarnLevel:  " \x1b[33m[WARN]\x1b[0m ",
	core.InfoLevel:  " \x1b[32m[INFO]\x1b[0m ",
	core.DebugLevel: " \x1b[34m[DEBUG]\x1b[0m ",
	core.TraceLevel: " \x1b[90m[TRACE]\x1b[0m ",
}

// Format renders rec into buf. Rendering stops at the first piece that does
// not fit.
func (f *TextFormatter) Format(rec *core.Record, buf *core.EntryBuf) error {
	t := rec.Time
	if f.UTC {
		t = t.UTC()
	}
	var scratch [64]byte
	if _, err := buf.Write(t.AppendFormat(scratch[:0], f.TimestampFormat)); err != nil {
		return err
	}

	brackets := &levelBrackets
	if f.Color {
		brackets = &coloredLevelBrackets
	}
	level := " [UNKNOWN] "
	if int(rec.Level) >= 0 && int(rec.Level) < len(brackets) {
		level = brackets[rec.Level]
	}
	if _, err := buf.WriteString(level); err != nil {
		return err
	}

	if rec.Target != "" {
		if _, err := buf.WriteString(rec.Target); err != nil {
			return err
		}
		if _, err := buf.WriteString(": "); err != nil {
			return err
		}
	}

	if f.IncludeCaller && rec.Caller.Defined {
		if err := buf.WriteByte('['); err != nil {
			return err
		}
		if err := appendCaller(buf, rec.Caller); err != nil {
			return err
		}
		if _, err := buf.WriteString("] "); err != nil {
			return err
		}
	}

	if _, err := buf.WriteString(rec.Message); err != nil {
		return err
	}
	appendFields(buf, rec.Fields)
	return buf.Err()
}
