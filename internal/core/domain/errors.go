package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedChunk indicates a chunk reached the deduplication
	// filter without a content hash. The chunk is skipped and reported;
	// ingestion continues.
	ErrMalformedChunk = errors.New("malformed chunk")

	// ErrStorageUnavailable indicates the persistence backend cannot be
	// reached. Ingestion fails fatally on it; query-time search degrades
	// to an empty result set instead.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNoProject indicates the query text names no known project.
	// This is a normal, user-visible response branch, not a failure.
	ErrNoProject = errors.New("no project identified")

	// ErrRetrievalTimeout indicates the language model did not answer
	// within the configured deadline. It is surfaced to the caller and
	// never retried automatically.
	ErrRetrievalTimeout = errors.New("retrieval timeout")
)
