package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "padbind.json", cfg.BindingsFile)
	assert.Equal(t, "Escape", cfg.CancelKey)
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Load([]string{
		"--addr", ":9999",
		"--poll-interval", "100ms",
		"--cancel-key", "Backspace",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "Backspace", cfg.CancelKey)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PADBIND_BINDINGS_FILE", "/tmp/pads.json")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pads.json", cfg.BindingsFile)
}

func TestLoadRejectsBadFlags(t *testing.T) {
	_, err := Load([]string{"--poll-interval", "banana"})
	assert.Error(t, err)
}
