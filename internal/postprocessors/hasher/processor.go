// Package hasher provides the content fingerprinting processor.
package hasher

import (
	"context"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// Processor stamps each chunk with the SHA-512 digest of its content.
// The digest is computed exactly once, here, and carried unchanged for
// the rest of the chunk's life: it is the duplicate key the
// deduplication filter and the stores rely on.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a new hasher processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "hasher"
}

// Process fills ContentHash on every chunk.
func (p *Processor) Process(_ context.Context, _ *domain.SourceDocument, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].ContentHash = domain.HashContent(chunks[i].Content)
	}
	return chunks, nil
}
