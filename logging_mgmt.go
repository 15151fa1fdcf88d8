package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/filter"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/shimmeringbee/logwrap/impl/tee"
	"github.com/switchyard/controller/config"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log"
	"os"
	"path/filepath"
)

func loadLoggingConfigurations(dir string) ([]config.LoggingConfig, error) {
	return loadConfigurations(dir, "logging", func(name string) *config.LoggingConfig {
		return &config.LoggingConfig{Name: name}
	})
}

// configureLogging replaces the bootstrap logger with the configured sinks. With no
// configurations the bootstrap logger is kept.
func configureLogging(cfgDir string, logDir string, l logwrap.Logger) (logwrap.Logger, error) {
	ctx := context.Background()

	logCfgs, err := loadLoggingConfigurations(cfgDir)
	if err != nil {
		return l, err
	}

	impls := make([]logwrap.Impl, 0, len(logCfgs))

	for _, cfg := range logCfgs {
		w, base, err := sinkWriter(cfg, logDir)
		if err != nil {
			return l, err
		}

		f, err := newLogFilter(base)
		if err != nil {
			return l, fmt.Errorf("logging '%s': %w", cfg.Name, err)
		}

		impls = append(impls, filter.Filter(golog.Wrap(log.New(w, "", log.LstdFlags)), f.allow))
		l.LogInfo(ctx, "Constructed logging.", logwrap.Datum("name", cfg.Name), logwrap.Datum("type", cfg.Type))
	}

	if len(impls) == 0 {
		l.LogWarn(ctx, "No logging configurations loaded, continuing with stderr only.")
		return l, nil
	}

	l.LogDebug(ctx, "Handing over to new logging configuration.")
	return logwrap.New(tee.Tee(impls...)), nil
}

func sinkWriter(cfg config.LoggingConfig, logDir string) (io.Writer, config.BaseLogging, error) {
	switch sink := cfg.Config.(type) {
	case *config.StdoutLogging:
		return os.Stderr, sink.BaseLogging, nil
	case *config.FileLogging:
		return &lumberjack.Logger{
			Filename:   filepath.Join(logDir, sink.Filename),
			MaxSize:    sink.Size,
			MaxBackups: sink.Count,
			MaxAge:     sink.MaxAge,
			Compress:   sink.Compress,
		}, sink.BaseLogging, nil
	default:
		return nil, config.BaseLogging{}, fmt.Errorf("unsupported logging configuration '%s' of type %s", cfg.Name, cfg.Type)
	}
}

var logLevels = map[string]logwrap.LogLevel{
	"panic": logwrap.Panic,
	"fatal": logwrap.Fatal,
	"error": logwrap.Error,
	"warn":  logwrap.Warn,
	"info":  logwrap.Info,
	"debug": logwrap.Debug,
	"trace": logwrap.Trace,
}

const defaultLogLevel = "info"

// logFilter passes messages at or above a level, from the listed subsystems or, when
// negated, from every other subsystem. An empty list passes all subsystems.
type logFilter struct {
	level      logwrap.LogLevel
	subsystems map[string]bool
	negate     bool
}

func newLogFilter(cfg config.BaseLogging) (logFilter, error) {
	if cfg.Level == "" {
		cfg.Level = defaultLogLevel
	}

	level, found := logLevels[cfg.Level]
	if !found {
		return logFilter{}, fmt.Errorf("unknown log level '%s'", cfg.Level)
	}

	f := logFilter{level: level, subsystems: map[string]bool{}, negate: cfg.NegateSubsystems}
	for _, s := range cfg.Subsystems {
		f.subsystems[s] = true
	}

	return f, nil
}

func (f logFilter) allow(message logwrap.Message) bool {
	if message.Level > f.level {
		return false
	}

	if len(f.subsystems) == 0 {
		return true
	}

	return f.negate != f.subsystems[message.Source]
}
