// ABOUTME: Tests for logger initialization
// ABOUTME: Verifies level parsing and the no-op default
package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultIsNop(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("discarded")
}

func TestInitialize(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	tests := []struct {
		level   string
		format  string
		enabled zapcore.Level
		wantErr bool
	}{
		{"debug", "console", zap.DebugLevel, false},
		{"info", "json", zap.InfoLevel, false},
		{"warn", "console", zap.WarnLevel, false},
		{"loud", "console", zap.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := Initialize(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Initialize(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !Log.Core().Enabled(tt.enabled) {
				t.Errorf("level %s should be enabled", tt.enabled)
			}
			if tt.enabled > zap.DebugLevel && Log.Core().Enabled(tt.enabled-1) {
				t.Errorf("level %s should be disabled", tt.enabled-1)
			}
		})
	}
}
