package formatter

import (
	"github.com/philipp01105/pipelog/core"
)

// GoogleFormatter renders entries in the glog header style:
//
//	I0308 213124.255 4242 app/store] message k=v
//	Lmmdd HHMMSS.FFF NAME TARGET] ...
//
// L is the level letter (E, W, I, D, T), FFF the milliseconds, NAME the
// configured name or the pid.
type GoogleFormatter struct {
	Config
	name string
}

// NewGoogleFormatter creates a new glog-style formatter
func NewGoogleFormatter(cfg Config) *GoogleFormatter {
	return &GoogleFormatter{Config: cfg, name: cfg.name()}
}

// Format renders rec into buf
func (f *GoogleFormatter) Format(rec *core.Record, buf *core.EntryBuf) error {
	t := rec.Time
	if f.UTC {
		t = t.UTC()
	}
	_, month, day := t.Date()
	hour, min, sec := t.Clock()

	var scratch [32]byte
	b := append(scratch[:0], rec.Level.Letter())
	b = itoa(b, int(month), 2)
	b = itoa(b, day, 2)
	b = append(b, ' ')
	b = itoa(b, hour, 2)
	b = itoa(b, min, 2)
	b = itoa(b, sec, 2)
	b = append(b, '.')
	b = itoa(b, t.Nanosecond()/1e6, 3)
	b = append(b, ' ')
	if _, err := buf.Write(b); err != nil {
		return err
	}

	writeTail(buf, &f.Config, f.name, rec)
	return buf.Err()
}

// SystemdFormatter is the glog style adapted for systemd's journal, see
// sd-daemon(3). Date and time are left to the journal; the level letter is
// replaced by a syslog priority prefix:
//
//	<5>4242 app/store] message
//
// <3> error, <4> warn, <5> info, <6> debug, <7> trace.
type SystemdFormatter struct {
	Config
	name string
}

// NewSystemdFormatter creates a new systemd-prefixed formatter
func NewSystemdFormatter(cfg Config) *SystemdFormatter {
	return &SystemdFormatter{Config: cfg, name: cfg.name()}
}

var systemdPrefixes = [...]string{
	core.OffLevel:   "<7>",
	core.ErrorLevel: "<3>", // SD_ERR
	core.WarnLevel:  "<4>", // SD_WARNING
	core.InfoLevel:  "<5>", // SD_NOTICE
	core.DebugLevel: "<6>", // SD_INFO
	core.TraceLevel: "<7>", // SD_DEBUG
}

// Format renders rec into buf
func (f *SystemdFormatter) Format(rec *core.Record, buf *core.EntryBuf) error {
	if int(rec.Level) >= 0 && int(rec.Level) < len(systemdPrefixes) {
		buf.WriteString(systemdPrefixes[rec.Level])
	} else {
		buf.WriteString("<7>")
	}
	writeTail(buf, &f.Config, f.name, rec)
	return buf.Err()
}

// writeTail writes "NAME TARGET[ file:line]] message fields". Rendering
// stops at the first piece that does not fit.
func writeTail(buf *core.EntryBuf, cfg *Config, name string, rec *core.Record) {
	if _, err := buf.WriteString(name); err != nil {
		return
	}
	if err := buf.WriteByte(' '); err != nil {
		return
	}
	if _, err := buf.WriteString(rec.Target); err != nil {
		return
	}
	if cfg.IncludeCaller && rec.Caller.Defined {
		if err := buf.WriteByte(' '); err != nil {
			return
		}
		if err := appendCaller(buf, rec.Caller); err != nil {
			return
		}
	}
	if _, err := buf.WriteString("] "); err != nil {
		return
	}
	if _, err := buf.WriteString(rec.Message); err != nil {
		return
	}
	appendFields(buf, rec.Fields)
}
