// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/internsim/internal/scenario"
)

// Config holds application settings. LLM provider settings live in
// llm.Config and are parsed separately.
type Config struct {
	// DBPath overrides the event log location. Empty means the XDG default.
	DBPath string `env:"INTERNSIM_DB"`

	// ScenarioFile, when set, serves every session from a pack file instead
	// of generating one.
	ScenarioFile string `env:"INTERNSIM_SCENARIO_FILE"`

	Industry    string `env:"INTERNSIM_INDUSTRY"`
	Stages      int    `env:"INTERNSIM_STAGES" envDefault:"3"`
	DatasetRows int    `env:"INTERNSIM_DATASET_ROWS" envDefault:"8"`

	LogLevel string `env:"INTERNSIM_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"INTERNSIM_LOG_FILE"`

	OTelEndpoint string `env:"INTERNSIM_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"INTERNSIM_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads envFile into the process environment, if it exists, and
// parses Config. Variables already set in the environment win over the
// file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c Config) Validate() error {
	if c.Stages < 1 {
		return fmt.Errorf("INTERNSIM_STAGES must be at least 1, got %d", c.Stages)
	}
	if c.DatasetRows < 0 {
		return fmt.Errorf("INTERNSIM_DATASET_ROWS must not be negative, got %d", c.DatasetRows)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("INTERNSIM_LOG_LEVEL: %w", err)
	}
	return nil
}

// Scenario returns the generation settings for scenario.LLMProvider.
func (c Config) Scenario() scenario.Config {
	sc := scenario.DefaultConfig()
	sc.Industry = c.Industry
	sc.StageCount = c.Stages
	sc.DatasetRows = c.DatasetRows
	return sc
}
