package filter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/philipp01105/pipelog/core"
)

// Directive is one (prefix, level) rule of a Specification.
type Directive struct {
	Prefix string
	Level  core.Level
}

// Specification is a compiled set of directives, most specific prefix
// first. It is immutable and safe for concurrent use.
type Specification struct {
	directives []Directive
	max        core.Level
}

// Compile parses spec, reporting unparsable directives to os.Stderr.
func Compile(spec string) *Specification {
	return CompileWithDiagnostics(spec, os.Stderr)
}

// CompileWithDiagnostics parses spec. A directive whose level after '='
// does not parse is reported on diag (if non-nil) and dropped; compilation
// itself never fails.
func CompileWithDiagnostics(spec string, diag io.Writer) *Specification {
	var directives []Directive
	for _, d := range strings.Split(spec, ",") {
		if d == "" {
			continue
		}
		prefix, lvl, hasLevel := strings.Cut(d, "=")
		if !hasLevel {
			if level, err := core.ParseLevel(prefix); err == nil {
				directives = append(directives, Directive{Level: level})
			} else {
				directives = append(directives, Directive{Prefix: prefix, Level: core.MaxLevel})
			}
			continue
		}
		level, err := core.ParseLevel(lvl)
		if err != nil {
			if diag != nil {
				fmt.Fprintf(diag, "logging directive %q has unparseable log level\n", d)
			}
			continue
		}
		directives = append(directives, Directive{Prefix: prefix, Level: level})
	}

	if len(directives) == 0 {
		directives = append(directives, Directive{Level: core.ErrorLevel})
	}

	// Longest prefix first; equal lengths keep their written order.
	sort.SliceStable(directives, func(i, j int) bool {
		return len(directives[i].Prefix) > len(directives[j].Prefix)
	})

	max := core.OffLevel
	for _, d := range directives {
		if d.Level > max {
			max = d.Level
		}
	}
	return &Specification{directives: directives, max: max}
}

// GetLevel returns the level of the first directive whose prefix is a
// prefix of target. The empty prefix matches every target and sorts last.
func (s *Specification) GetLevel(target string) core.Level {
	for _, d := range s.directives {
		if strings.HasPrefix(target, d.Prefix) {
			return d.Level
		}
	}
	return core.OffLevel
}

// Enabled reports whether a record at level for target passes the filter.
func (s *Specification) Enabled(target string, level core.Level) bool {
	return s.GetLevel(target) >= level
}

// Max returns the most verbose level any target can reach. It is meant for
// an upstream threshold that rejects records before a target lookup;
// GetLevel does not consult it.
func (s *Specification) Max() core.Level {
	return s.max
}

// Directives returns a copy of the compiled directives in lookup order.
func (s *Specification) Directives() []Directive {
	out := make([]Directive, len(s.directives))
	copy(out, s.directives)
	return out
}

// String renders the specification in lookup order, e.g.
// "http/router=trace,http=warn,=info".
func (s *Specification) String() string {
	var b strings.Builder
	for i, d := range s.directives {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d.Prefix)
		b.WriteByte('=')
		b.WriteString(strings.ToLower(d.Level.String()))
	}
	return b.String()
}
