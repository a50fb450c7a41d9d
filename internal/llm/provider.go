package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the provider
	// uses its native structured-output mode and the returned Content has
	// already been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	// System sets the model's role and ground rules.
	System string

	// Messages is the conversation. Scenario generation sends exactly one
	// user message.
	Messages []Message

	// Schema, when set, constrains the response to JSON of that shape.
	// When nil the response Content is the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "internship-scenario". It is
	// sent as the schema name to providers that need one and keys the
	// compiled-schema cache.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is the model output for one Request.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may differ
	// from ModelID when an alias was resolved upstream.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
