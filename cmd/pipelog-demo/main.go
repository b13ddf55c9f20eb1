// Command pipelog-demo drives a pipeline from several goroutines, logging
// natively, through log/slog and through zap.
//
//	pipelog-demo --log-spec 'info,worker=debug' --format text --async --workers 4
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/philipp01105/pipelog/config"
	"github.com/philipp01105/pipelog/handler/sloghandler"
	"github.com/philipp01105/pipelog/handler/zaphandler"
	"github.com/philipp01105/pipelog/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pipelog-demo:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pipelog-demo", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "YAML configuration file")
	spec := fs.String("log-spec", "", "directive string, e.g. 'info,worker=debug'")
	format := fs.String("format", "", "google, google-systemd or text")
	dest := fs.String("dest", "", "stderr, stdout or file")
	color := fs.String("color", "", "auto, always or never")
	logFile := fs.String("file", "", "log file for --dest file")
	async := fs.Bool("async", false, "deliver through the background consumer")
	workers := fs.IntP("workers", "w", 4, "producer goroutines")
	count := fs.IntP("count", "n", 5, "entries per producer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if err := config.ApplyEnv(&cfg, nil); err != nil {
		return err
	}
	if fs.Changed("log-spec") {
		cfg.Spec = *spec
	}
	if fs.Changed("format") {
		cfg.Format = *format
	}
	if fs.Changed("dest") {
		cfg.Destination = *dest
	}
	if fs.Changed("color") {
		cfg.Color = *color
	}
	if fs.Changed("file") {
		cfg.File.Filename = *logFile
	}
	if fs.Changed("async") {
		cfg.Async = *async
	}
	// Async mode is scoped explicitly below instead of being left to Close.
	wantAsync := cfg.Async
	cfg.Async = false

	log, err := config.Open(cfg)
	if err != nil {
		return err
	}
	defer log.Close()
	if err := logger.Install(log); err != nil {
		return err
	}

	if wantAsync {
		defer log.Async().End()
	}

	slogger := slog.New(sloghandler.New(log, "slog"))
	zlogger := zap.New(zaphandler.New(log, "zap"), zap.AddCaller())
	defer zlogger.Sync()

	logger.Info("starting", logger.Int("workers", *workers), logger.Bool("async", wantAsync))

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			wlog := log.Named("worker").With(logger.Int("worker", id))
			for i := 0; i < *count; i++ {
				wlog.Debug("tick", logger.Int("i", i))
				switch i % 3 {
				case 1:
					slogger.Info("slog says hello", "worker", id, "i", i)
				case 2:
					zlogger.Named("worker/zap").Warn("zap says hello", zap.Int("worker", id), zap.Int("i", i))
				}
			}
		}(w)
	}
	wg.Wait()
	log.Flush()

	s := log.Stats()
	logger.Info("done",
		logger.Duration("elapsed", time.Since(start)),
		logger.Uint64("entries", s.EntriesTotal),
		logger.Uint64("bytes", s.BytesTotal),
		logger.Uint64("batches", s.BatchesTotal),
	)
	return nil
}
