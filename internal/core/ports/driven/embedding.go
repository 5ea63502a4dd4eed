package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The model lifecycle lives outside the core: the service is an opaque
// text-to-vector function, deterministic for identical input.
//
// Implementations may include:
//   - Ollama (jina-embeddings-v2, nomic-embed-text)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. This is the
	// ingestion path; implementations may rate-limit it.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
