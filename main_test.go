package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/psyomn/repolink/internal/infrastructure/config"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{
			name:     "debug",
			input:    "debug",
			expected: zapcore.DebugLevel,
		},
		{
			name:     "info",
			input:    "info",
			expected: zapcore.InfoLevel,
		},
		{
			name:     "warn",
			input:    "warn",
			expected: zapcore.WarnLevel,
		},
		{
			name:     "error",
			input:    "error",
			expected: zapcore.ErrorLevel,
		},
		{
			name:     "unknown falls back to info",
			input:    "loud",
			expected: zapcore.InfoLevel,
		},
		{
			name:     "empty falls back to info",
			input:    "",
			expected: zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logLevel(tt.input))
		})
	}
}

func TestNewZapLogger(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "debug")

	log := newZapLogger()

	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}
