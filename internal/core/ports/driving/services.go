// Package driving provides interfaces for application entry points
// (primary/inbound ports).
package driving

import (
	"context"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// IngestService drives corpus loading and collection lifecycle.
type IngestService interface {
	// IngestDocuments loads, chunks, deduplicates and persists the
	// document corpus under root. Returns the number of chunks added.
	IngestDocuments(ctx context.Context, root string) (int, error)

	// IngestMessages loads a chat-log file and persists its windowed
	// chunks. Returns the number of chunks added.
	IngestMessages(ctx context.Context, path string) (int, error)

	// Reset deletes every persisted chunk and returns the count removed.
	Reset(ctx context.Context) (int, error)

	// Projects returns the distinct project names in the store.
	Projects(ctx context.Context) ([]string, error)
}

// AskService answers questions grounded on the ingested corpus.
type AskService interface {
	Ask(ctx context.Context, query domain.Query) (domain.Answer, error)
}
