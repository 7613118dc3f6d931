// Package config loads service configuration from an optional YAML file,
// a .env file, and ENACT_* environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/enact-eco/enact/internal/advisor"
	"github.com/enact-eco/enact/internal/carbon"
)

// TrackerConfig controls the background activity sampler.
type TrackerConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
}

// AdvisorConfig controls the AI suggestion client.
type AdvisorConfig struct {
	BaseURL        string                `yaml:"base_url"`
	TimeoutSeconds int                   `yaml:"timeout_seconds"`
	Models         []advisor.ModelConfig `yaml:"models"`
}

// ThresholdConfig sets the emission budgets that trigger advice.
type ThresholdConfig struct {
	DailyGrams  float64 `yaml:"daily_grams"`
	WeeklyGrams float64 `yaml:"weekly_grams"`
}

// Config is the full service configuration.
type Config struct {
	ListenAddr     string             `yaml:"listen_addr"`
	LogDir         string             `yaml:"log_dir"`
	LogLevel       string             `yaml:"log_level"`
	Country        string             `yaml:"country"`
	GridIntensity  float64            `yaml:"grid_intensity"`
	BasePowerWatts map[string]float64 `yaml:"base_power_watts"`
	CPUDivisor     float64            `yaml:"cpu_divisor"`

	Tracker    TrackerConfig   `yaml:"tracker"`
	Advisor    AdvisorConfig   `yaml:"advisor"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr: ":8000",
		LogDir:     "logs",
		LogLevel:   "info",
		Tracker: TrackerConfig{
			Enabled:         true,
			IntervalSeconds: 10,
		},
		Advisor: AdvisorConfig{
			BaseURL:        advisor.DefaultBaseURL,
			TimeoutSeconds: 5,
		},
		Thresholds: ThresholdConfig{
			DailyGrams:  carbon.DailyThresholdGrams,
			WeeklyGrams: carbon.WeeklyThresholdGrams,
		},
	}
}

// Load builds the configuration. path may be empty; a missing file at the
// default location is not an error, an unreadable explicit path is.
func Load(path string, logger zerolog.Logger) (Config, error) {
	// A .env file is a developer convenience, never required.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = "enact.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv(logger)

	if cfg.GridIntensity < 0 {
		return Config{}, fmt.Errorf("grid_intensity must not be negative, got %v", cfg.GridIntensity)
	}
	if cfg.Tracker.IntervalSeconds <= 0 {
		cfg.Tracker.IntervalSeconds = Default().Tracker.IntervalSeconds
	}
	return cfg, nil
}

// applyEnv overlays ENACT_* environment variables. Invalid values log a
// warning and keep the previous setting.
func (c *Config) applyEnv(logger zerolog.Logger) {
	if v := os.Getenv("ENACT_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ENACT_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("ENACT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ENACT_COUNTRY"); v != "" {
		c.Country = v
	}
	if v := os.Getenv("ENACT_GRID_INTENSITY"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.GridIntensity = parsed
		} else {
			logger.Warn().Str("value", v).Msg("invalid ENACT_GRID_INTENSITY, keeping previous value")
		}
	}
	if v := os.Getenv("ENACT_TRACKER_INTERVAL"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Tracker.IntervalSeconds = parsed
		} else {
			logger.Warn().Str("value", v).Msg("invalid ENACT_TRACKER_INTERVAL, keeping previous value")
		}
	}
	if strings.EqualFold(os.Getenv("ENACT_TRACKER_DISABLED"), "true") {
		c.Tracker.Enabled = false
	}

	// A bare OPENROUTER_API_KEY wires the default free-tier model chain.
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" && len(c.Advisor.Models) == 0 {
		c.Advisor.Models = []advisor.ModelConfig{
			{Model: "qwen/qwen3-coder:free", APIKey: key},
			{Model: "mistralai/mistral-7b-instruct:free", APIKey: key},
			{Model: "google/gemini-2.0-flash-exp:free", APIKey: key},
		}
	}
}

// EstimatorConfig resolves the estimation tables from this configuration.
// An explicit grid_intensity beats the country lookup, which beats the
// global default.
func (c Config) EstimatorConfig() carbon.Config {
	estCfg := carbon.DefaultConfig()

	switch {
	case c.GridIntensity > 0:
		estCfg.GridIntensity = c.GridIntensity
	case c.Country != "":
		estCfg.GridIntensity = carbon.GridIntensityForCountry(c.Country)
	}

	if len(c.BasePowerWatts) > 0 {
		merged := make(map[string]float64, len(carbon.BasePowerWatts))
		for k, v := range carbon.BasePowerWatts {
			merged[k] = v
		}
		for k, v := range c.BasePowerWatts {
			merged[strings.ToLower(k)] = v
		}
		estCfg.BasePowerWatts = merged
	}
	if c.CPUDivisor > 0 {
		estCfg.CPUDivisor = c.CPUDivisor
	}
	return estCfg
}
