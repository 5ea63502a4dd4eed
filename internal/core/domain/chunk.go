package domain

import (
	"crypto/sha512"
	"encoding/hex"
)

// Metadata keys shared between ingestion and retrieval.
// Document-derived chunks carry project, author, year and title;
// link, page and source are optional.
const (
	MetaProject = "project_name"
	MetaAuthor  = "author"
	MetaYear    = "year"
	MetaTitle   = "title"
	MetaLink    = "link"
	MetaPage    = "page"
	MetaSource  = "source"
)

// Chat-derived chunks carry these keys instead of document provenance.
const (
	MetaChatID      = "chat_id"
	MetaSubject     = "subject"
	MetaTimestamp   = "timestamp"
	MetaCentralText = "central_text"
)

// Chunk is the unit of retrieval: a bounded window of source text plus
// provenance metadata.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the chunk text.
	Content string

	// ContentHash is the SHA-512 hex digest of Content, computed once
	// at chunking time and never recomputed. It is the sole duplicate
	// key: the store never holds two chunks with the same hash.
	ContentHash string

	// Embedding is the dense vector for Content, computed externally.
	Embedding []float32

	// Metadata contains provenance key-value pairs. See the Meta*
	// constants for the recognised keys.
	Metadata map[string]any
}

// HashContent returns the SHA-512 hex digest of the UTF-8 bytes of content.
func HashContent(content string) string {
	sum := sha512.Sum512([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Project returns the project_name metadata value, or "".
func (c Chunk) Project() string { return c.metaString(MetaProject) }

// Title returns the title metadata value, or "".
func (c Chunk) Title() string { return c.metaString(MetaTitle) }

// Author returns the author metadata value, or "".
func (c Chunk) Author() string { return c.metaString(MetaAuthor) }

// Year returns the year metadata value, or "".
func (c Chunk) Year() string { return c.metaString(MetaYear) }

// Link returns the link metadata value, or "".
func (c Chunk) Link() string { return c.metaString(MetaLink) }

// Page returns the page metadata value when present. Numbers round-trip
// through the storage backends as int, int64 or float64 depending on
// the codec, so all three are accepted.
func (c Chunk) Page() (int, bool) {
	switch v := c.Metadata[MetaPage].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func (c Chunk) metaString(key string) string {
	if v, ok := c.Metadata[key].(string); ok {
		return v
	}
	return ""
}
