// Package plaintext extracts text from plain-text source files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// pageBreak separates pages in extracted text files. Corpus
// preparation tools emit it between pages; files without it are a
// single page.
const pageBreak = "\f"

// Extractor handles .txt and .md files.
type Extractor struct{}

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the extractor handles the given path.
func (e *Extractor) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// Extract returns the file's text split on form-feed page breaks.
// Page numbers start at 1.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.PageText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	raw := strings.Split(string(data), pageBreak)
	pages := make([]domain.PageText, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, domain.PageText{
			Number: i + 1,
			Text:   text,
		})
	}
	return pages, nil
}
