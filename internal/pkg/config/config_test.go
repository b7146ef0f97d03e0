package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PLANNER_SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8094", cfg.ServerPort)
	assert.Equal(t, "9094", cfg.MetricsPort)
	assert.Equal(t, "6060", cfg.PprofPort)
	assert.Equal(t, 30*time.Minute, cfg.Planner.SessionTTL)
	assert.Equal(t, 90*time.Second, cfg.Planner.GenerationBudget)
}

func TestDurationOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	t.Setenv("PLANNER_SESSION_TTL", "15m")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Planner.SessionTTL)

	// Bare integers are seconds
	t.Setenv("PLANNER_GENERATION_BUDGET", "120")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, cfg.Planner.GenerationBudget)

	// Unparseable values fall back to the default
	t.Setenv("PLANNER_SESSION_TTL", "soon")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Planner.SessionTTL)
}
