package driven

import (
	"context"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// TextExtractor turns a source file into per-page text. PDF parsing
// fidelity is outside the core; a PDF-capable extractor can be plugged
// in next to the built-in plain-text one.
type TextExtractor interface {
	// Supports reports whether the extractor handles the given path.
	Supports(path string) bool

	// Extract returns the text of the file, one entry per page.
	Extract(ctx context.Context, path string) ([]domain.PageText, error)
}

// CorpusLoader loads extracted source documents from a directory tree.
// One subdirectory equals one project.
type CorpusLoader interface {
	Load(ctx context.Context, root string) ([]domain.SourceDocument, error)
}

// MessageLoader loads chat-log messages for conversational ingestion.
type MessageLoader interface {
	Load(ctx context.Context, path string) ([]domain.Message, error)
}

// PostProcessor processes an extracted source document to produce
// chunks. PostProcessors are chained in a pipeline (splitting, hashing).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks. A processor that
	// creates chunks receives nil and returns new ones; a processor
	// that enriches chunks receives and returns them.
	Process(ctx context.Context, doc *domain.SourceDocument, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order and
	// returns the final chunks.
	Process(ctx context.Context, doc *domain.SourceDocument) ([]domain.Chunk, error)
}
