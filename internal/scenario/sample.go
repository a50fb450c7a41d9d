package scenario

import (
	_ "embed"
	"encoding/json"
)

//go:embed sample.json
var sampleOutput []byte

// SampleOutput returns a complete scenario in the LLM response format.
// The mock LLM backend replays it so the game runs without an API key.
func SampleOutput() json.RawMessage {
	return json.RawMessage(sampleOutput)
}
