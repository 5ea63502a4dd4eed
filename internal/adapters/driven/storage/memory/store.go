// Package memory provides an in-memory chunk store, used in tests and
// as a throwaway backend for local experiments.
package memory

import (
	"context"
	"sync"

	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage"
	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store is an in-memory implementation of driven.ChunkStore.
type Store struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
	hashes map[string]struct{}
}

// NewStore creates a new in-memory chunk store.
func NewStore() *Store {
	return &Store{
		hashes: make(map[string]struct{}),
	}
}

// AddChunks appends chunks, skipping content hashes already present.
func (s *Store) AddChunks(_ context.Context, chunks []domain.Chunk) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if _, dup := s.hashes[c.ContentHash]; dup {
			continue
		}
		s.hashes[c.ContentHash] = struct{}{}
		s.chunks = append(s.chunks, c)
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// FetchHashes returns the content hash of every stored chunk.
func (s *Store) FetchHashes(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashes := make(map[string]struct{}, len(s.hashes))
	for h := range s.hashes {
		hashes[h] = struct{}{}
	}
	return hashes, nil
}

// Clear removes every chunk and returns the count removed.
func (s *Store) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.chunks)
	s.chunks = nil
	s.hashes = make(map[string]struct{})
	return removed, nil
}

// ListProjects returns the distinct project names stored.
func (s *Store) ListProjects(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var projects []string
	for _, c := range s.chunks {
		p := c.Project()
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		projects = append(projects, p)
	}
	return projects, nil
}

// KeywordSearch scores the project's chunks by token matches.
func (s *Store) KeywordSearch(_ context.Context, project, keywords string, topK int) ([]domain.Chunk, error) {
	return storage.TopByKeywords(s.projectChunks(project), keywords, topK), nil
}

// VectorSearch ranks the project's chunks by cosine similarity.
func (s *Store) VectorSearch(_ context.Context, embedding []float32, project string, topK int) ([]domain.Chunk, error) {
	return storage.TopByCosine(s.projectChunks(project), embedding, topK), nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func (s *Store) projectChunks(project string) []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Chunk
	for _, c := range s.chunks {
		if c.Project() == project {
			out = append(out, c)
		}
	}
	return out
}
