package postprocessors

import (
	"github.com/relato-labs/relato-cli/internal/postprocessors/chunker"
	"github.com/relato-labs/relato-cli/internal/postprocessors/hasher"
)

// NewDefaultPipeline builds the standard ingestion pipeline: recursive
// splitting followed by content fingerprinting.
func NewDefaultPipeline(chunkSize, overlap int) *Pipeline {
	return NewPipeline(
		chunker.New(
			chunker.WithChunkSize(chunkSize),
			chunker.WithOverlap(overlap),
		),
		hasher.New(),
	)
}
