// Package logging provides config-driven categorized logging for golife.
// Every category is a named child of one zap logger; categories switched off
// in the config get a no-op logger so call sites never check.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golife/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryBuild  Category = "build"  // Native and web builds
	CategoryVerify Category = "verify" // Output directory checks
	CategoryServe  Category = "serve"  // Static file server
	CategoryWatch  Category = "watch"  // Source watcher and rebuilds
	CategoryGame   Category = "game"   // Engine and front ends
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.SugaredLogger)
	closers []func() error
)

// Options tweak Initialize for front ends that own the terminal.
type Options struct {
	// Quiet drops the stderr sink; only the configured file receives logs.
	Quiet bool
	// Verbose forces debug level.
	Verbose bool
}

// Initialize builds the process logger from the logging config.
// Calling it again replaces the previous logger.
func Initialize(lc config.LoggingConfig, opts Options) error {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch lc.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "", "console", "text":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return fmt.Errorf("unknown log format %q (valid: console, json)", lc.Format)
	}

	var cores []zapcore.Core
	var fileClosers []func() error
	if !opts.Quiet {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level))
	}
	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", lc.File, err)
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), level))
		fileClosers = append(fileClosers, f.Close)
	}

	l := zap.NewNop()
	if len(cores) > 0 {
		l = zap.New(zapcore.NewTee(cores...))
	}
	Replace(l, lc)

	mu.Lock()
	for _, c := range closers {
		_ = c()
	}
	closers = fileClosers
	mu.Unlock()

	Get(CategoryBoot).Debugw("logging initialized", "level", level.String(), "format", lc.Format, "file", lc.File)
	return nil
}

// Replace installs an already-built logger, mainly for tests and embedding.
func Replace(l *zap.Logger, lc config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	cfg = lc
	loggers = make(map[Category]*zap.SugaredLogger)
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// L returns the root logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	var l *zap.SugaredLogger
	if cfg.IsCategoryEnabled(string(category)) {
		l = base.Named(string(category)).Sugar()
	} else {
		l = zap.NewNop().Sugar()
	}
	loggers[category] = l
	return l
}

// Sync flushes buffered entries and closes the log file.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	for _, c := range closers {
		_ = c()
	}
	closers = nil
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debugf(format, args...) }

// Build logs to the build category
func Build(format string, args ...interface{}) { Get(CategoryBuild).Infof(format, args...) }

// BuildDebug logs debug to the build category
func BuildDebug(format string, args ...interface{}) { Get(CategoryBuild).Debugf(format, args...) }

// BuildError logs an error to the build category
func BuildError(format string, args ...interface{}) { Get(CategoryBuild).Errorf(format, args...) }

// Serve logs to the serve category
func Serve(format string, args ...interface{}) { Get(CategoryServe).Infof(format, args...) }

// Watch logs to the watch category
func Watch(format string, args ...interface{}) { Get(CategoryWatch).Infof(format, args...) }

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) { Get(CategoryWatch).Debugf(format, args...) }

// WatchError logs an error to the watch category
func WatchError(format string, args ...interface{}) { Get(CategoryWatch).Errorf(format, args...) }

// GameDebug logs debug to the game category
func GameDebug(format string, args ...interface{}) { Get(CategoryGame).Debugf(format, args...) }

// =============================================================================
// TIMING
// =============================================================================

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	category  Category
	operation string
	start     time.Time
}

// StartTimer starts timing operation under category.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, operation: operation, start: time.Now()}
}

// Stop logs the elapsed time at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugw("operation finished", "op", t.operation, "elapsed", elapsed)
	return elapsed
}

// StopWithInfo logs the elapsed time at info level and returns it.
func (t *Timer) StopWithInfo() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Infow("operation finished", "op", t.operation, "elapsed", elapsed)
	return elapsed
}
