package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider sends requests through OpenRouter's OpenAI-compatible
// gateway. Model IDs are passed through unchanged ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	// Attribution headers let OpenRouter group usage by application.
	headers := map[string]string{
		"HTTP-Referer": "https://github.com/abhisek/internsim",
		"X-Title":      "InternSim",
	}
	return &OpenRouterProvider{OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, headers)}, nil
}
