package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/internsim/internal/store"
)

// NewProvider builds the configured backend and wraps it so that each
// caller-visible Generate is retried, and each attempt is traced and
// recorded:
//
//	caller → retry → tracing → logging → backend
//
// A nil repo skips request recording.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		mock := NewMockProvider()
		mock.SetDefault(MockResponse{Content: cfg.MockContent})
		base = mock
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo, logger)
	}
	p = WithTracing(p, cfg.Provider)
	return WithRetry(p, cfg.Retry), nil
}

// NewProviderFromEnv reads INTERNSIM_* variables, falling back to the
// vendors' own key variables when no provider key is configured.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo, logger *slog.Logger, opts ...ConfigOption) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = mergeDiscovered(cfg, discovered)
		}
	}
	return NewProvider(ctx, cfg, repo, logger)
}

// mergeDiscovered keeps explicit model and retry settings while taking the
// provider and key from discovery.
func mergeDiscovered(cfg, found Config) Config {
	cfg.Provider = found.Provider
	switch found.Provider {
	case ProviderAnthropic:
		cfg.Anthropic.APIKey = found.Anthropic.APIKey
	case ProviderOpenAI:
		cfg.OpenAI.APIKey = found.OpenAI.APIKey
	case ProviderGemini:
		cfg.Gemini.APIKey = found.Gemini.APIKey
	case ProviderOpenRouter:
		cfg.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
	return cfg
}
