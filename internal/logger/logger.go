// Package logger holds the process wide zap logger of the command line tool.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	global = zap.NewNop().Sugar()
)

// Init replaces the global logger by a console logger on stderr which logs
// everything at or above the given level (debug, info, warn, error).
func Init(level string) (*zap.SugaredLogger, error) {
	log, err := New(level, zapcore.AddSync(os.Stderr))
	if err != nil {
		return nil, err
	}

	mu.Lock()
	global = log
	mu.Unlock()
	return log, nil
}

// New builds a console logger writing to out.
func New(level string, out zapcore.WriteSyncer) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, lvl)
	return zap.New(core).Sugar(), nil
}

// Logger returns the global logger. It discards everything until Init was called.
func Logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return global
}

// Sync flushes the global logger.
func Sync() {
	// Syncing stderr fails on some terminals, there is nothing to do about it.
	_ = Logger().Sync()
}
