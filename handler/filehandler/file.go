package filehandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig holds configuration for a file destination
type FileConfig struct {
	// Filename is the path to the log file
	Filename string `yaml:"filename"`
	// MaxSizeMB is the size in megabytes that triggers rotation (default: 100)
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int `yaml:"max_backups"`
	// MaxAgeDays is the maximum age of old log files in days (0 = no age limit)
	MaxAgeDays int `yaml:"max_age_days"`
	// Compress gzips rotated files
	Compress bool `yaml:"compress"`
	// LocalTime names backups with local time instead of UTC
	LocalTime bool `yaml:"local_time"`
	// RotateInterval rotates the file after this much time (0 = no interval rotation)
	RotateInterval time.Duration `yaml:"rotate_interval"`
}

// File is a rotating log file
type File struct {
	mu             sync.Mutex
	lj             *lumberjack.Logger
	rotateInterval time.Duration
	lastRotateTime time.Time
	now            func() time.Time
}

// New opens the log file described by cfg, creating its directory if
// needed.
func New(cfg FileConfig) (*File, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filehandler: filename is required")
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 || cfg.RotateInterval < 0 {
		return nil, fmt.Errorf("filehandler: negative rotation setting for %s", cfg.Filename)
	}

	if dir := filepath.Dir(cfg.Filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("filehandler: create log directory: %w", err)
		}
	}

	return &File{
		lj: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		rotateInterval: cfg.RotateInterval,
		lastRotateTime: time.Now(),
		now:            time.Now,
	}, nil
}

// Write appends p to the file, rotating first when the interval elapsed.
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return f.lj.Write(p)
}

// rotateIfNeeded checks interval-based rotation; size-based rotation is
// handled by lumberjack.
func (f *File) rotateIfNeeded() error {
	if f.rotateInterval <= 0 {
		return nil
	}
	now := f.now()
	if now.Sub(f.lastRotateTime) < f.rotateInterval {
		return nil
	}
	f.lastRotateTime = now
	return f.lj.Rotate()
}

// Rotate closes the current file, moves it aside and opens a new one.
func (f *File) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRotateTime = f.now()
	return f.lj.Rotate()
}

// Filename returns the path of the active log file
func (f *File) Filename() string {
	return f.lj.Filename
}

// Close closes the file
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lj.Close()
}
