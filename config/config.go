package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/pipelog/formatter"
	"github.com/philipp01105/pipelog/handler/consolehandler"
	"github.com/philipp01105/pipelog/handler/filehandler"
	"github.com/philipp01105/pipelog/logger"
)

// DestinationFile selects the rotating file sink.
const DestinationFile = "file"

// Environment variables read by ApplyEnv.
const (
	EnvSpec   = "PIPELOG_SPEC"
	EnvFormat = "PIPELOG_FORMAT"
	EnvDest   = "PIPELOG_DEST"
	EnvColor  = "PIPELOG_COLOR"
	EnvAsync  = "PIPELOG_ASYNC"
)

// Config describes a Logger
type Config struct {
	// Spec is the directive string (default: "", errors only)
	Spec string `yaml:"spec"`
	// Format is the formatter name (default: google)
	Format string `yaml:"format"`
	// Name replaces the pid in glog-style headers
	Name string `yaml:"name"`
	// Destination is stderr, stdout or file (default: stderr)
	Destination string `yaml:"destination"`
	// Color is auto, always or never (default: auto)
	Color string `yaml:"color"`
	// Async starts the Logger in async mode; Close ends it
	Async bool `yaml:"async"`
	// Caller includes file:line in every entry
	Caller bool `yaml:"caller"`
	// UTC renders timestamps in UTC
	UTC bool `yaml:"utc"`
	// File configures the file destination
	File filehandler.FileConfig `yaml:"file"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Format:      formatter.GoogleFormat,
		Destination: consolehandler.Stderr.String(),
		Color:       consolehandler.ColorAuto.String(),
	}
}

// Parse decodes YAML on top of Default. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the PIPELOG_* variables found by lookup
// (os.LookupEnv when nil).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvSpec); ok {
		cfg.Spec = v
	}
	if v, ok := lookup(EnvFormat); ok {
		cfg.Format = v
	}
	if v, ok := lookup(EnvDest); ok {
		cfg.Destination = v
	}
	if v, ok := lookup(EnvColor); ok {
		cfg.Color = v
	}
	if v, ok := lookup(EnvAsync); ok {
		async, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvAsync, err)
		}
		cfg.Async = async
	}
	return nil
}

// Validate reports every problem in cfg at once
func (c Config) Validate() error {
	var err error
	if _, ferr := formatter.New(c.Format, formatter.Config{}); ferr != nil {
		err = multierr.Append(err, ferr)
	}
	if _, cerr := consolehandler.ParseColorMode(c.Color); cerr != nil {
		err = multierr.Append(err, cerr)
	}
	if strings.EqualFold(c.Destination, DestinationFile) {
		if c.File.Filename == "" {
			err = multierr.Append(err, errors.New("file destination requires file.filename"))
		}
		if c.File.MaxSizeMB < 0 || c.File.MaxBackups < 0 || c.File.MaxAgeDays < 0 || c.File.RotateInterval < 0 {
			err = multierr.Append(err, errors.New("file rotation settings must not be negative"))
		}
	} else if _, derr := consolehandler.ParseDestination(c.Destination); derr != nil {
		err = multierr.Append(err, derr)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Open validates cfg and builds the Logger it describes. Directive
// diagnostics go to os.Stderr. The caller owns the Logger and must Close it
// to release a file destination.
//
// With cfg.Async the Logger is returned already in async mode and only
// Close ends it; calling Async on it again panics. Callers that want to
// scope async mode themselves leave cfg.Async unset and use
//
//	defer l.Async().End()
func Open(cfg Config) (*logger.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var w io.Writer
	if strings.EqualFold(cfg.Destination, DestinationFile) {
		f, err := filehandler.New(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		w = f
	} else {
		dest, _ := consolehandler.ParseDestination(cfg.Destination)
		w = dest.Writer()
	}

	mode, _ := consolehandler.ParseColorMode(cfg.Color)
	f, _ := formatter.New(cfg.Format, formatter.Config{
		IncludeCaller: cfg.Caller,
		Name:          cfg.Name,
		Color:         mode.ShouldColor(w),
		UTC:           cfg.UTC,
	})

	l := logger.NewBuilder().
		WithSpec(cfg.Spec).
		WithFormatter(f).
		WithWriter(w).
		WithCaller(cfg.Caller).
		Build()
	if cfg.Async {
		l.Async()
	}
	return l, nil
}
