// ABOUTME: Process-wide structured logger built on zap
// ABOUTME: Log is a no-op until Initialize is called so library code can always log
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. Never nil.
var Log *zap.Logger = zap.NewNop()

// Initialize replaces Log with a logger at the given level.
// format is "json" for production encoding, anything else for console.
func Initialize(level, format string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = lvl
	// stdout belongs to the conversation
	cfg.OutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	Log = zl
	return nil
}

// Sync flushes buffered entries; errors from syncing stderr are ignored
func Sync() {
	_ = Log.Sync()
}
