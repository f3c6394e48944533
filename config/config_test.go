package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.AudioEnabled)
	assert.Equal(t, "auto", cfg.ColorMode)
	assert.Equal(t, 1.0, cfg.ViewScale)
	assert.Empty(t, cfg.JournalPath)
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GRAPHVIEW_LOG_LEVEL", "debug")
	t.Setenv("GRAPHVIEW_LOG_FORMAT", "json")
	t.Setenv("GRAPHVIEW_TICK_INTERVAL", "50ms")
	t.Setenv("GRAPHVIEW_JOURNAL", "/tmp/graph.db")
	t.Setenv("GRAPHVIEW_AUDIO", "false")
	t.Setenv("GRAPHVIEW_COLOR_MODE", "256")
	t.Setenv("GRAPHVIEW_VIEW_SCALE", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "/tmp/graph.db", cfg.JournalPath)
	assert.False(t, cfg.AudioEnabled)
	assert.Equal(t, "256", cfg.ColorMode)
	assert.Equal(t, 2.5, cfg.ViewScale)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"unparseable duration", "GRAPHVIEW_TICK_INTERVAL", "soon", "parse env:"},
		{"negative duration", "GRAPHVIEW_TICK_INTERVAL", "-1s", "tick interval"},
		{"bad format", "GRAPHVIEW_LOG_FORMAT", "xml", "log format"},
		{"bad color mode", "GRAPHVIEW_COLOR_MODE", "cga", "color mode"},
		{"zero scale", "GRAPHVIEW_VIEW_SCALE", "0", "view scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}
