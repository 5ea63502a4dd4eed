package driven

import "context"

// LLMService provides language model text generation. The core only
// supplies a fully rendered prompt string; generation quality is the
// model's concern, not the pipeline's.
//
// Implementations may include:
//   - Ollama (local models such as llama3.2)
//   - OpenAI, Anthropic (cloud APIs)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
