package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantWarn  bool
		wantErr   bool
	}{
		{
			name:      "debug logs everything",
			level:     "debug",
			wantDebug: true,
			wantWarn:  true,
		},
		{
			name:     "warn hides debug",
			level:    "warn",
			wantWarn: true,
		},
		{
			name:  "error hides warnings",
			level: "error",
		},
		{
			name:    "unknown level",
			level:   "loud",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			log, err := New(tt.level, zapcore.AddSync(&out))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			log.Debug("a debug line")
			log.Warn("a warn line")

			if got := strings.Contains(out.String(), "a debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out.String(), "a warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestLogger_defaultsToNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() = nil, want a no-op logger")
	}
}
