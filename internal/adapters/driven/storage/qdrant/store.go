// Package qdrant provides the remote chunk store variant, talking to a
// Qdrant instance over its REST API. Vector search is delegated to the
// server; lexical search scrolls the project partition and scores
// locally so both variants agree on token matching.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage"
	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

const (
	defaultTimeout    = 15 * time.Second
	defaultCollection = "relato_chunks"
	scrollPageSize    = 256
)

// Config holds the connection settings for a Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Dimensions int
	Timeout    time.Duration
}

// Store is a Qdrant-backed chunk store.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimensions int
	client     *http.Client
}

// NewStore creates a Qdrant store and ensures its collection exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: qdrant url is required", domain.ErrInvalidInput)
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: qdrant vector dimensions must be positive", domain.ErrInvalidInput)
	}
	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	s := &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: collection,
		dimensions: cfg.Dimensions,
		client:     &http.Client{Timeout: timeout},
	}

	if err := s.ensureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensuring collection: %w", err)
	}
	return s, nil
}

// ensureCollection creates the collection if missing. Qdrant answers
// 200 when the collection already exists with the same schema.
func (s *Store) ensureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimensions,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("/collections/%s", s.collection), body, nil)
}

// AddChunks upserts chunks as points, skipping content hashes already
// present. The hash check and the upsert are two round trips; the
// embedded variant is the one that closes that window atomically.
func (s *Store) AddChunks(ctx context.Context, chunks []domain.Chunk) ([]string, error) {
	existing, err := s.FetchHashes(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]map[string]any, 0, len(chunks))
	ids := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if _, dup := existing[c.ContentHash]; dup {
			continue
		}
		existing[c.ContentHash] = struct{}{}

		payload := make(map[string]any, len(c.Metadata)+2)
		for k, v := range c.Metadata {
			payload[k] = v
		}
		payload["content"] = c.Content
		payload["content_hash"] = c.ContentHash

		points = append(points, map[string]any{
			"id":      c.ID,
			"vector":  c.Embedding,
			"payload": payload,
		})
		ids = append(ids, c.ID)
	}

	if len(points) == 0 {
		return ids, nil
	}

	body := map[string]any{"points": points}
	if err := s.putJSON(ctx, fmt.Sprintf("/collections/%s/points?wait=true", s.collection), body, nil); err != nil {
		return nil, fmt.Errorf("upserting points: %w", err)
	}
	return ids, nil
}

// FetchHashes scrolls the whole collection and returns every content
// hash stored.
func (s *Store) FetchHashes(ctx context.Context) (map[string]struct{}, error) {
	hashes := make(map[string]struct{})
	err := s.scroll(ctx, nil, func(p point) {
		if h, ok := p.Payload["content_hash"].(string); ok && h != "" {
			hashes[h] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// Clear counts the points, drops the collection and recreates it
// empty, returning the count removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("/collections/%s/points/count", s.collection), map[string]any{"exact": true}, &resp); err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}

	if err := s.deleteJSON(ctx, fmt.Sprintf("/collections/%s", s.collection)); err != nil {
		return 0, fmt.Errorf("deleting collection: %w", err)
	}
	if err := s.ensureCollection(ctx); err != nil {
		return 0, fmt.Errorf("recreating collection: %w", err)
	}
	return resp.Result.Count, nil
}

// ListProjects scrolls the collection and collects distinct project
// names in first-seen order.
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var projects []string
	err := s.scroll(ctx, nil, func(p point) {
		name, ok := p.Payload[domain.MetaProject].(string)
		if !ok || name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		projects = append(projects, name)
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// KeywordSearch scrolls the project partition and scores chunks
// locally by distinct token matches.
func (s *Store) KeywordSearch(ctx context.Context, project, keywords string, topK int) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := s.scroll(ctx, projectFilter(project), func(p point) {
		chunks = append(chunks, p.toChunk())
	})
	if err != nil {
		return nil, err
	}
	return storage.TopByKeywords(chunks, keywords, topK), nil
}

// VectorSearch delegates similarity ranking to the server, filtered to
// one project.
func (s *Store) VectorSearch(ctx context.Context, embedding []float32, project string, topK int) ([]domain.Chunk, error) {
	req := map[string]any{
		"vector":       embedding,
		"limit":        topK,
		"with_payload": true,
		"filter":       projectFilter(project),
	}
	var resp struct {
		Result []point `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("/collections/%s/points/search", s.collection), req, &resp); err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	chunks := make([]domain.Chunk, 0, len(resp.Result))
	for _, p := range resp.Result {
		chunks = append(chunks, p.toChunk())
	}
	return chunks, nil
}

// Close releases resources.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// point is the subset of a Qdrant point the store reads back.
type point struct {
	ID      any            `json:"id"`
	Payload map[string]any `json:"payload"`
}

func (p point) toChunk() domain.Chunk {
	chunk := domain.Chunk{
		ID:       fmt.Sprintf("%v", p.ID),
		Metadata: make(map[string]any, len(p.Payload)),
	}
	for k, v := range p.Payload {
		switch k {
		case "content":
			if text, ok := v.(string); ok {
				chunk.Content = text
			}
		case "content_hash":
			if h, ok := v.(string); ok {
				chunk.ContentHash = h
			}
		default:
			chunk.Metadata[k] = v
		}
	}
	return chunk
}

func projectFilter(project string) map[string]any {
	return map[string]any{
		"must": []map[string]any{
			{
				"key":   domain.MetaProject,
				"match": map[string]any{"value": project},
			},
		},
	}
}

// scroll pages through points matching filter, invoking visit per
// point. A nil filter scrolls the whole collection.
func (s *Store) scroll(ctx context.Context, filter map[string]any, visit func(point)) error {
	var offset any
	for {
		req := map[string]any{
			"limit":        scrollPageSize,
			"with_payload": true,
		}
		if filter != nil {
			req["filter"] = filter
		}
		if offset != nil {
			req["offset"] = offset
		}

		var resp struct {
			Result struct {
				Points         []point `json:"points"`
				NextPageOffset any     `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.postJSON(ctx, fmt.Sprintf("/collections/%s/points/scroll", s.collection), req, &resp); err != nil {
			return fmt.Errorf("scrolling points: %w", err)
		}

		for _, p := range resp.Result.Points {
			visit(p)
		}

		if resp.Result.NextPageOffset == nil {
			return nil
		}
		offset = resp.Result.NextPageOffset
	}
}

func (s *Store) putJSON(ctx context.Context, path string, body, out any) error {
	return s.doJSON(ctx, http.MethodPut, path, body, out)
}

func (s *Store) postJSON(ctx context.Context, path string, body, out any) error {
	return s.doJSON(ctx, http.MethodPost, path, body, out)
}

func (s *Store) deleteJSON(ctx context.Context, path string) error {
	return s.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (s *Store) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
