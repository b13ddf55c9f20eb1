package formatter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/philipp01105/pipelog/core"
)

// Formatter renders a Record into an EntryBuf. Implementations append text
// only; the caller terminates the buffer. A formatter returns
// core.ErrTruncated when the entry did not fit, which callers accept.
type Formatter interface {
	Format(rec *core.Record, buf *core.EntryBuf) error
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format of the text format (empty for RFC3339)
	TimestampFormat string
	// Name identifies the process in glog-style headers (default: the pid)
	Name string
	// Color wraps the level of the text format in ANSI color codes
	Color bool
	// UTC renders timestamps in UTC instead of local time
	UTC bool
}

func (c *Config) name() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(os.Getpid())
}

// Format names accepted by New.
const (
	GoogleFormat  = "google"
	SystemdFormat = "google-systemd"
	TextFormat    = "text"
)

// New returns the formatter registered under name.
func New(name string, cfg Config) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", GoogleFormat, "glog":
		return NewGoogleFormatter(cfg), nil
	case SystemdFormat, "systemd":
		return NewSystemdFormatter(cfg), nil
	case TextFormat:
		return NewTextFormatter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", name)
	}
}

// appendFields writes " key=value" for every field. It stops at the first
// field that does not fit, so a truncated entry stays a prefix of the full one.
func appendFields(buf *core.EntryBuf, fields []core.Field) {
	var scratch [128]byte
	for _, field := range fields {
		if buf.Truncated() {
			return
		}
		b := append(scratch[:0], ' ')
		b = append(b, field.Key...)
		b = append(b, '=')
		b = field.AppendValue(b)
		buf.Write(b)
	}
}

// appendCaller writes "file.go:42".
func appendCaller(buf *core.EntryBuf, caller core.CallerInfo) error {
	var scratch [64]byte
	b := append(scratch[:0], caller.ShortFile...)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(caller.Line), 10)
	_, err := buf.Write(b)
	return err
}

// itoa appends i zero-padded to wid digits.
func itoa(b []byte, i int, wid int) []byte {
	var tmp [20]byte
	bp := len(tmp) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		tmp[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	tmp[bp] = byte('0' + i)
	return append(b, tmp[bp:]...)
}
