// Package chunker provides a recursive character splitting processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 64

// separators are tried in order when cutting a window: paragraph
// breaks, then line breaks, then sentence ends, then word boundaries.
// A raw character cut is the last resort.
var separators = []string{"\n\n", "\n", ". ", " "}

// Processor splits source document pages into overlapping text windows
// and attaches provenance metadata to each resulting chunk.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must stay below the chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document pages into chunks. Input chunks are
// ignored; this processor creates new chunks from page content.
func (p *Processor) Process(_ context.Context, doc *domain.SourceDocument, _ []domain.Chunk) ([]domain.Chunk, error) {
	var chunks []domain.Chunk

	for _, page := range doc.Pages {
		for _, piece := range p.split(page.Text) {
			metadata := map[string]any{
				domain.MetaProject: doc.Project,
				domain.MetaAuthor:  doc.Author,
				domain.MetaYear:    doc.Year,
				domain.MetaTitle:   doc.Title,
				domain.MetaPage:    page.Number,
				domain.MetaSource:  doc.Source,
			}
			if doc.Link != "" {
				metadata[domain.MetaLink] = doc.Link
			}

			chunks = append(chunks, domain.Chunk{
				ID:       uuid.New().String(),
				Content:  piece,
				Metadata: metadata,
			})
		}
	}

	return chunks, nil
}

// split cuts text into overlapping windows of at most chunkSize runes,
// preferring natural boundaries over raw character cuts.
func (p *Processor) split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var pieces []string
	start := 0

	for start < len(runes) {
		end := start + p.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = p.cut(runes, start, end)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			pieces = append(pieces, piece)
		}

		if end >= len(runes) {
			break
		}

		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return pieces
}

// cut finds the cut position for the window runes[start:limit],
// preferring the latest boundary in the window's second half so chunks
// never degenerate below half the configured size.
func (p *Processor) cut(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	minOffset := len(window) / 2

	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx >= minOffset {
			return start + utf8.RuneCountInString(window[:idx+len(sep)])
		}
	}
	return limit
}
