package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	SelfPlay SelfPlayConfig `mapstructure:"selfplay"`
	Mapgen   MapgenConfig   `mapstructure:"mapgen"`
}

// EngineConfig holds the decision engine budgets and scoring constants
type EngineConfig struct {
	TimeBudgetMs        int              `mapstructure:"time_budget_ms"`
	MaxCommandsMe       int              `mapstructure:"max_commands_me"`
	MaxCommandsOpponent int              `mapstructure:"max_commands_opponent"`
	MaxCommandsPerUnit  int              `mapstructure:"max_commands_per_unit"`
	MaxCandidates       int              `mapstructure:"max_candidates"`
	ContextPoolSize     int              `mapstructure:"context_pool_size"`
	Weights             WeightsConfig    `mapstructure:"weights"`
	Heuristics          HeuristicsConfig `mapstructure:"heuristics"`
}

// TimeBudget returns the evaluation budget as a duration
func (e EngineConfig) TimeBudget() time.Duration {
	return time.Duration(e.TimeBudgetMs) * time.Millisecond
}

// WeightsConfig holds the evaluation weights
type WeightsConfig struct {
	Control    float64 `mapstructure:"control"`
	Wetness    float64 `mapstructure:"wetness"`
	HalfSoaked float64 `mapstructure:"half_soaked"`
	Eliminated float64 `mapstructure:"eliminated"`
}

// HeuristicsConfig holds the candidate scoring constants
type HeuristicsConfig struct {
	DangerRadius  int `mapstructure:"danger_radius"`
	AllyRadius    int `mapstructure:"ally_radius"`
	AllyPenalty   int `mapstructure:"ally_penalty"`
	MaxThrowRange int `mapstructure:"max_throw_range"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SelfPlayConfig holds offline game settings
type SelfPlayConfig struct {
	MaxTurns int   `mapstructure:"max_turns"`
	Seed     int64 `mapstructure:"seed"`
}

// MapgenConfig holds arena generation settings
type MapgenConfig struct {
	Width          int `mapstructure:"width"`
	Height         int `mapstructure:"height"`
	UnitsPerPlayer int `mapstructure:"units_per_player"`
	CoverPercent   int `mapstructure:"cover_percent"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Engine budgets
	v.SetDefault("engine.time_budget_ms", 60)
	v.SetDefault("engine.max_commands_me", 300)
	v.SetDefault("engine.max_commands_opponent", 64)
	v.SetDefault("engine.max_commands_per_unit", 50)
	v.SetDefault("engine.max_candidates", 5)
	v.SetDefault("engine.context_pool_size", 10)

	// Evaluation weights
	v.SetDefault("engine.weights.control", 20.0)
	v.SetDefault("engine.weights.wetness", 1.0)
	v.SetDefault("engine.weights.half_soaked", 1000.0)
	v.SetDefault("engine.weights.eliminated", 2000.0)

	// Candidate heuristics
	v.SetDefault("engine.heuristics.danger_radius", 7)
	v.SetDefault("engine.heuristics.ally_radius", 3)
	v.SetDefault("engine.heuristics.ally_penalty", 20)
	v.SetDefault("engine.heuristics.max_throw_range", 4)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Self-play
	v.SetDefault("selfplay.max_turns", 100)
	v.SetDefault("selfplay.seed", 0)

	// Arena generation
	v.SetDefault("mapgen.width", 16)
	v.SetDefault("mapgen.height", 8)
	v.SetDefault("mapgen.units_per_player", 4)
	v.SetDefault("mapgen.cover_percent", 12)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SOAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing explicit file falls back to defaults as well
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Defaults returns a fresh config holding only the built-in defaults.
// It does not touch the global instance.
func Defaults() *Config {
	dv := viper.New()
	setViperDefaults(dv)
	c := &Config{}
	if err := dv.Unmarshal(c); err != nil {
		panic("invalid built-in config defaults: " + err.Error())
	}
	return c
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reloaded config
// that fails validation is discarded and the previous values stay active.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	e := c.Engine
	if e.TimeBudgetMs <= 0 {
		return fmt.Errorf("engine.time_budget_ms must be positive")
	}
	if e.MaxCommandsMe <= 0 || e.MaxCommandsOpponent <= 0 {
		return fmt.Errorf("engine.max_commands_me and engine.max_commands_opponent must be positive")
	}
	if e.MaxCommandsPerUnit <= 0 {
		return fmt.Errorf("engine.max_commands_per_unit must be positive")
	}
	if e.MaxCandidates <= 0 {
		return fmt.Errorf("engine.max_candidates must be positive")
	}
	if e.ContextPoolSize <= 0 {
		return fmt.Errorf("engine.context_pool_size must be positive")
	}
	if e.Heuristics.MaxThrowRange < 0 || e.Heuristics.MaxThrowRange > 4 {
		return fmt.Errorf("engine.heuristics.max_throw_range must be between 0 and 4")
	}
	if e.Heuristics.DangerRadius < 0 || e.Heuristics.AllyRadius < 0 || e.Heuristics.AllyPenalty < 0 {
		return fmt.Errorf("engine.heuristics values must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.SelfPlay.MaxTurns < 0 {
		return fmt.Errorf("selfplay.max_turns must be non-negative")
	}

	if c.Mapgen.Width <= 0 || c.Mapgen.Height <= 0 {
		return fmt.Errorf("mapgen dimensions must be positive")
	}
	if c.Mapgen.UnitsPerPlayer <= 0 || c.Mapgen.UnitsPerPlayer*2 > 10 {
		return fmt.Errorf("mapgen.units_per_player must be between 1 and 5")
	}
	if c.Mapgen.CoverPercent < 0 || c.Mapgen.CoverPercent > 50 {
		return fmt.Errorf("mapgen.cover_percent must be between 0 and 50")
	}

	return nil
}
