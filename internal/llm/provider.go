package llm

import (
	"context"
	"encoding/json"
)

// Provider is the generation service boundary. Implementations send a
// prompt to a hosted model and return its reply, normalising failures into
// the error types in errors.go.
type Provider interface {
	// Generate sends req and returns the model's reply. When req.Schema is
	// set the reply Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output and
	// makes Generate validate the reply against it.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema. Kebab-case, e.g. "worksheet-questions-5".
	// Compiled schemas are cached by name.
	Name        string
	Description string
	Definition  map[string]any

	// Strict enables OpenAI strict structured output. Only valid when every
	// property is required and additionalProperties is false.
	Strict bool
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalised to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Named is implemented by providers that report a vendor name for event logs.
type Named interface {
	Name() string
}

// ProviderName returns p's vendor name, or its model ID when p is not Named.
func ProviderName(p Provider) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return p.ModelID()
}
