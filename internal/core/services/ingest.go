package services

import (
	"context"
	"fmt"

	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
	"github.com/relato-labs/relato-cli/internal/core/ports/driving"
	"github.com/relato-labs/relato-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultMessageWindow is the number of neighbouring messages captured
// on each side of a central chat message.
const DefaultMessageWindow = 3

// IngestService loads source material, chunks it, filters duplicates
// against the persisted fingerprints and writes the remainder with
// embeddings attached. Ingestion errors are fatal and reported to the
// operator; re-running is safe because the dedup filter makes the whole
// operation idempotent.
type IngestService struct {
	store         driven.ChunkStore
	embedder      driven.EmbeddingService
	pipeline      driven.PostProcessorPipeline
	corpusLoader  driven.CorpusLoader
	messageLoader driven.MessageLoader
	messageWindow int
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithMessageWindow sets the chat context window size.
func WithMessageWindow(n int) IngestOption {
	return func(s *IngestService) {
		if n >= 0 {
			s.messageWindow = n
		}
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	pipeline driven.PostProcessorPipeline,
	corpusLoader driven.CorpusLoader,
	messageLoader driven.MessageLoader,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		store:         store,
		embedder:      embedder,
		pipeline:      pipeline,
		corpusLoader:  corpusLoader,
		messageLoader: messageLoader,
		messageWindow: DefaultMessageWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestDocuments loads the document corpus under root, chunks it and
// persists the chunks that are not already present. Returns the number
// of chunks added.
func (s *IngestService) IngestDocuments(ctx context.Context, root string) (int, error) {
	logger.Section("Ingest Documents")

	docs, err := s.corpusLoader.Load(ctx, root)
	if err != nil {
		return 0, fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("loaded %d documents from %s", len(docs), root)

	var candidates []domain.Chunk
	for i := range docs {
		chunks, err := s.pipeline.Process(ctx, &docs[i])
		if err != nil {
			return 0, fmt.Errorf("chunk document %q: %w", docs[i].Source, err)
		}
		candidates = append(candidates, chunks...)
	}
	logger.Info("chunked into %d candidates", len(candidates))

	return s.persist(ctx, candidates)
}

// IngestMessages loads a chat-log file and persists its windowed
// chunks. Returns the number of chunks added.
func (s *IngestService) IngestMessages(ctx context.Context, path string) (int, error) {
	logger.Section("Ingest Messages")

	messages, err := s.messageLoader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("load messages: %w", err)
	}
	logger.Info("loaded %d messages from %s", len(messages), path)

	candidates := ChunkMessages(messages, s.messageWindow)
	return s.persist(ctx, candidates)
}

// persist runs dedup, embeds the surviving chunks and appends them.
func (s *IngestService) persist(ctx context.Context, candidates []domain.Chunk) (int, error) {
	existing, err := s.store.FetchHashes(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch fingerprints: %w", err)
	}

	fresh, stats := FilterNew(candidates, existing)
	logger.Info("found %d duplicate chunks, loading %d new chunks", stats.Duplicates, stats.New)
	if len(fresh) == 0 {
		return 0, nil
	}

	texts := make([]string, len(fresh))
	for i, c := range fresh {
		texts[i] = c.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	for i := range fresh {
		fresh[i].Embedding = embeddings[i]
	}

	ids, err := s.store.AddChunks(ctx, fresh)
	if err != nil {
		return 0, fmt.Errorf("add chunks: %w", err)
	}
	logger.Info("persisted %d chunks", len(ids))
	return len(ids), nil
}

// Reset deletes every persisted chunk and returns the count removed.
func (s *IngestService) Reset(ctx context.Context) (int, error) {
	removed, err := s.store.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear collection: %w", err)
	}
	logger.Info("removed %d chunks", removed)
	return removed, nil
}

// Projects returns the distinct project names in the store.
func (s *IngestService) Projects(ctx context.Context) ([]string, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
