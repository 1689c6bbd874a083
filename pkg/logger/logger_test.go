package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"panic", zapcore.PanicLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.level), "level %q", tt.level)
	}
}

func TestNewAndFieldHelpers(t *testing.T) {
	log, err := New("info")
	require.NoError(t, err)

	assert.NotSame(t, log, log.WithField("k", "v"))
	assert.NotSame(t, log, log.WithFields(map[string]interface{}{"a": 1, "b": 2}))
	assert.NotSame(t, log, log.WithError(assert.AnError))
	assert.NotSame(t, log, log.WithRequestID("req-1"))
}
