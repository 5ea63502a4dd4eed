package driven

import (
	"context"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// ChunkStore persists document chunks with their embeddings and serves
// both retrieval modalities. Two production variants exist (an embedded
// SQLite store and a remote Qdrant collection); callers depend only on
// this capability set, never on which variant is active.
type ChunkStore interface {
	// AddChunks appends chunks with precomputed embeddings and returns
	// the IDs of the chunks actually inserted. The batch is written in
	// a single transaction: on a backend failure nothing is persisted.
	// Chunks whose content hash is already present are skipped, backed
	// by the store's uniqueness guarantee on the hash.
	AddChunks(ctx context.Context, chunks []domain.Chunk) ([]string, error)

	// FetchHashes returns the content hash of every persisted chunk.
	// Used only by the deduplication filter; an unbounded scan is
	// acceptable at ingestion-time cost.
	FetchHashes(ctx context.Context) (map[string]struct{}, error)

	// Clear deletes every chunk in the collection, irreversibly, and
	// returns the number of chunks removed.
	Clear(ctx context.Context) (int, error)

	// ListProjects returns the distinct project names currently
	// persisted. An empty slice is valid: no corpus loaded yet.
	ListProjects(ctx context.Context) ([]string, error)

	// KeywordSearch performs lexical matching restricted to project.
	// keywords is the preprocessed query (folded, stop-words removed).
	// Results are ordered by descending match score.
	KeywordSearch(ctx context.Context, project, keywords string, topK int) ([]domain.Chunk, error)

	// VectorSearch returns up to topK chunks nearest to embedding,
	// filtered to project, ordered by descending cosine similarity.
	VectorSearch(ctx context.Context, embedding []float32, project string, topK int) ([]domain.Chunk, error)

	// Close releases resources.
	Close() error
}
