package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "not-a-bool")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	assert.Equal(t, Config{Level: zerolog.ErrorLevel, Timestamp: false, NoColor: false}, cfg)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "protodump", Config{Level: zerolog.InfoLevel, NoColor: true})

	logger.Debug().Msg("hidden")
	logger.Info().Int("fields", 3).Msg("parsed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "app=protodump")
	assert.Contains(t, out, "fields=3")
}
