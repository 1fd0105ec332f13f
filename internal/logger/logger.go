// Package logger wraps zap construction so that callers get a usable
// no-op logger before Init and a leveled production logger after.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger carries the underlying zap logger.
type Logger struct {
	// Log is the zap logger. Never nil.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error"; case-insensitive) and swaps it in.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = logger
	return nil
}
