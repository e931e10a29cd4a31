package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/quantbr/fundascore/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"WARN", zerolog.WarnLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestNewAndChaining(t *testing.T) {
	log := New(&config.Config{Env: "development", LogLevel: "info", LogFormat: "json"})
	assert.NotNil(t, log)

	child := log.WithField("component", "test").
		WithFields(map[string]interface{}{"a": 1, "b": "two"}).
		WithError(assert.AnError)
	assert.NotNil(t, child)

	// Chaining must not mutate the parent.
	assert.NotSame(t, log, child)
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := NewNop()
	log.Debug("quiet")
	log.Info("quiet")
	log.Warn("quiet")
	log.Error("quiet")
	log.Infof("quiet %d", 1)
}
