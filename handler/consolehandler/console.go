package consolehandler

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Destination is the console stream entries are written to.
type Destination int

const (
	// Stderr writes to standard error
	Stderr Destination = iota
	// Stdout writes to standard output
	Stdout
)

// String returns the string representation of the destination
func (d Destination) String() string {
	switch d {
	case Stderr:
		return "stderr"
	case Stdout:
		return "stdout"
	default:
		return "unknown"
	}
}

// ParseDestination parses "stderr" or "stdout", case-insensitively. The
// empty string selects Stderr.
func ParseDestination(s string) (Destination, error) {
	switch strings.ToLower(s) {
	case "", "stderr":
		return Stderr, nil
	case "stdout":
		return Stdout, nil
	default:
		return Stderr, fmt.Errorf("unknown log destination %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Destination) UnmarshalText(text []byte) error {
	v, err := ParseDestination(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Writer returns the os stream for d.
func (d Destination) Writer() *os.File {
	if d == Stdout {
		return os.Stdout
	}
	return os.Stderr
}

// ColorMode controls ANSI coloring of console output.
type ColorMode int

const (
	// ColorAuto colors only terminals
	ColorAuto ColorMode = iota
	// ColorAlways always colors
	ColorAlways
	// ColorNever never colors
	ColorNever
)

// String returns the string representation of the color mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses "auto", "always" or "never", case-insensitively.
// The empty string selects ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on", "true":
		return ColorAlways, nil
	case "never", "off", "false":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ColorMode) UnmarshalText(text []byte) error {
	v, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ShouldColor reports whether output written to w should carry ANSI colors.
func (m ColorMode) ShouldColor(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal. Writers that expose a file
// descriptor are checked with isatty; anything else is not a terminal.
func IsTerminal(w io.Writer) bool {
	switch typed := w.(type) {
	case nil:
		return false
	case interface{ Fd() uintptr }:
		fd := typed.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return false
	}
}
