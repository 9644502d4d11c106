package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  time_budget_ms: 45
  max_commands_me: 200
  weights:
    eliminated: 2500
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	reset()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 45, c.Engine.TimeBudgetMs)
	assert.Equal(t, 45*time.Millisecond, c.Engine.TimeBudget())
	assert.Equal(t, 200, c.Engine.MaxCommandsMe)
	assert.Equal(t, 64, c.Engine.MaxCommandsOpponent, "unset keys keep their default")
	assert.Equal(t, 2500.0, c.Engine.Weights.Eliminated)
	assert.Equal(t, 1000.0, c.Engine.Weights.HalfSoaked)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 60, c.Engine.TimeBudgetMs)
	assert.Equal(t, 300, c.Engine.MaxCommandsMe)
	assert.Equal(t, 64, c.Engine.MaxCommandsOpponent)
	assert.Equal(t, 50, c.Engine.MaxCommandsPerUnit)
	assert.Equal(t, 5, c.Engine.MaxCandidates)
	assert.Equal(t, 10, c.Engine.ContextPoolSize)
	assert.Equal(t, WeightsConfig{Control: 20, Wetness: 1, HalfSoaked: 1000, Eliminated: 2000}, c.Engine.Weights)
	assert.Equal(t, HeuristicsConfig{DangerRadius: 7, AllyRadius: 3, AllyPenalty: 20, MaxThrowRange: 4}, c.Engine.Heuristics)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, 100, c.SelfPlay.MaxTurns)
}

func TestDefaults(t *testing.T) {
	reset()
	d := Defaults()
	assert.Nil(t, cfg, "Defaults must not initialise the global config")
	assert.NoError(t, Validate(d))
	assert.Equal(t, 60, d.Engine.TimeBudgetMs)
	assert.Equal(t, 16, d.Mapgen.Width)
}

func TestEnvironmentVariables(t *testing.T) {
	reset()

	t.Setenv("SOAK_ENGINE_TIME_BUDGET_MS", "30")
	t.Setenv("SOAK_ENGINE_MAX_COMMANDS_OPPONENT", "16")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 30, c.Engine.TimeBudgetMs)
	assert.Equal(t, 16, c.Engine.MaxCommandsOpponent)
}

func TestInvalidFileIsRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("engine:\n  context_pool_size: 0\n"), 0644))

	reset()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context_pool_size")
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("engine.time_budget_ms", 80)
	Set("selfplay.max_turns", 12)

	c := Get()
	assert.Equal(t, 80, c.Engine.TimeBudgetMs)
	assert.Equal(t, 12, c.SelfPlay.MaxTurns)
	assert.Equal(t, "console", c.Logging.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero budget", func(c *Config) { c.Engine.TimeBudgetMs = 0 }, "time_budget_ms"},
		{"no opponent commands", func(c *Config) { c.Engine.MaxCommandsOpponent = 0 }, "max_commands_opponent"},
		{"no per unit commands", func(c *Config) { c.Engine.MaxCommandsPerUnit = 0 }, "max_commands_per_unit"},
		{"no candidates", func(c *Config) { c.Engine.MaxCandidates = 0 }, "max_candidates"},
		{"throw too far", func(c *Config) { c.Engine.Heuristics.MaxThrowRange = 5 }, "max_throw_range"},
		{"negative penalty", func(c *Config) { c.Engine.Heuristics.AllyPenalty = -1 }, "heuristics"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative turns", func(c *Config) { c.SelfPlay.MaxTurns = -1 }, "max_turns"},
		{"too many units", func(c *Config) { c.Mapgen.UnitsPerPlayer = 6 }, "units_per_player"},
		{"too much cover", func(c *Config) { c.Mapgen.CoverPercent = 60 }, "cover_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
