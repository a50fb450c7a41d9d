package scenario

import "time"

// Config controls the behavior of the LLMProvider.
type Config struct {
	// Industry is an optional business domain to set the scenario in,
	// e.g. "retail" or "logistics". Empty lets the model choose.
	Industry string

	// StageCount is the number of challenge stages to request.
	StageCount int

	// DatasetRows is the number of dataset records to request.
	DatasetRows int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds a single Fetch, including provider-level retries.
	// Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// Validators run in order on every decoded scenario.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		StageCount:  3,
		DatasetRows: 8,
		MaxTokens:   4096,
		Temperature: 0.8,
		Timeout:     90 * time.Second,
		Validators:  DefaultValidators(),
	}
}
