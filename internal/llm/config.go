package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend.
type Config struct {
	Provider string `env:"INTERNSIM_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// MockContent is replayed by the mock backend for every request.
	// Without it the mock backend has nothing to answer with.
	MockContent json.RawMessage
}

// ConfigOption adjusts a Config loaded from the environment.
type ConfigOption func(*Config)

// WithMockContent sets the reply served when the mock backend is selected.
func WithMockContent(content json.RawMessage) ConfigOption {
	return func(c *Config) { c.MockContent = content }
}

type AnthropicConfig struct {
	APIKey  string `env:"INTERNSIM_ANTHROPIC_API_KEY"`
	Model   string `env:"INTERNSIM_ANTHROPIC_MODEL"`
	BaseURL string `env:"INTERNSIM_ANTHROPIC_BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"INTERNSIM_OPENAI_API_KEY"`
	Model   string `env:"INTERNSIM_OPENAI_MODEL"`
	BaseURL string `env:"INTERNSIM_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"INTERNSIM_GEMINI_API_KEY"`
	Model  string `env:"INTERNSIM_GEMINI_MODEL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"INTERNSIM_OPENROUTER_API_KEY"`
	Model   string `env:"INTERNSIM_OPENROUTER_MODEL"`
	BaseURL string `env:"INTERNSIM_OPENROUTER_BASE_URL"`
}

// RetryConfig controls backoff for transient provider failures.
type RetryConfig struct {
	MaxAttempts int           `env:"INTERNSIM_LLM_MAX_ATTEMPTS"`
	InitialWait time.Duration `env:"INTERNSIM_LLM_INITIAL_WAIT"`
	MaxWait     time.Duration `env:"INTERNSIM_LLM_MAX_WAIT"`
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults. Scenario generation produces
// long structured documents, so the default models favour output quality
// over latency.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:     OpenAIConfig{Model: "gpt-4.1-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv overlays INTERNSIM_* environment variables on the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse LLM env: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig falls back to the vendors' conventional key variables when
// no INTERNSIM_* key is set. Probe order is Anthropic, OpenAI, Gemini,
// OpenRouter. It reports false when no key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		envVar   string
		provider string
		set      func(string)
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, func(k string) { cfg.Anthropic.APIKey = k }},
		{"OPENAI_API_KEY", ProviderOpenAI, func(k string) { cfg.OpenAI.APIKey = k }},
		{"GEMINI_API_KEY", ProviderGemini, func(k string) { cfg.Gemini.APIKey = k }},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, func(k string) { cfg.OpenRouter.APIKey = k }},
	}
	for _, p := range probes {
		if k := os.Getenv(p.envVar); k != "" {
			cfg.Provider = p.provider
			p.set(k)
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, envVar string
	switch c.Provider {
	case ProviderAnthropic:
		key, envVar = c.Anthropic.APIKey, "INTERNSIM_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envVar = c.OpenAI.APIKey, "INTERNSIM_OPENAI_API_KEY"
	case ProviderGemini:
		key, envVar = c.Gemini.APIKey, "INTERNSIM_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envVar = c.OpenRouter.APIKey, "INTERNSIM_OPENROUTER_API_KEY"
	case ProviderMock:
		if len(c.MockContent) == 0 {
			return fmt.Errorf("the %s provider has no scenario to serve", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	return nil
}
