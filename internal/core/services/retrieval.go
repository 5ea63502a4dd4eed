package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
	"github.com/relato-labs/relato-cli/internal/core/ports/driving"
	"github.com/relato-labs/relato-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.AskService = (*RetrievalService)(nil)

// DefaultKeywordK is the fixed result count requested from the lexical
// path. The vector path uses the per-query SearchK instead.
const DefaultKeywordK = 5

// DefaultAnswerTimeout bounds a single language model call.
const DefaultAnswerTimeout = 30 * time.Second

// RetrievalService answers questions by resolving a project scope,
// fetching candidate chunks from both search modalities, and grounding
// a language model answer on the merged context.
type RetrievalService struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	prompts  driven.PromptStore
	keywordK int
	timeout  time.Duration
}

// Option configures the retrieval service.
type Option func(*RetrievalService)

// WithKeywordK sets the result count for the lexical path.
func WithKeywordK(k int) Option {
	return func(s *RetrievalService) {
		if k > 0 {
			s.keywordK = k
		}
	}
}

// WithAnswerTimeout sets the deadline for a language model call.
func WithAnswerTimeout(d time.Duration) Option {
	return func(s *RetrievalService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	opts ...Option,
) *RetrievalService {
	s := &RetrievalService{
		store:    store,
		embedder: embedder,
		llm:      llm,
		prompts:  prompts,
		keywordK: DefaultKeywordK,
		timeout:  DefaultAnswerTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveProject finds the first known project whose name occurs in the
// lowercased query text. The match order is the order projects were
// returned by the store; when two project names both occur in the query
// the first one wins.
func ResolveProject(query string, projects []string) (string, bool) {
	lowered := strings.ToLower(query)
	for _, p := range projects {
		if p == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}

// Ask answers a question grounded on the project corpus named in the
// query. When the query names no known project the model is never
// invoked: the answer lists the available projects instead.
func (s *RetrievalService) Ask(ctx context.Context, query domain.Query) (domain.Answer, error) {
	logger.Section("Retrieval")
	logger.Debug("query: %q (k=%d)", query.Text, query.SearchK)

	if err := query.Validate(); err != nil {
		return domain.Answer{}, fmt.Errorf("validate query: %w", err)
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("list projects: %w", err)
	}

	project, ok := ResolveProject(query.Text, projects)
	if !ok {
		logger.Info("no project identified in query, known projects: %v", projects)
		return domain.Answer{ModelResponse: noProjectResponse(projects)}, nil
	}
	logger.Info("resolved project: %s", project)

	// The two search calls have no data dependency; run them
	// concurrently and join. Failures on either path degrade to an
	// empty result set rather than failing the query.
	var vecChunks, kwChunks []domain.Chunk
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		vecChunks = s.vectorSearch(ctx, query.Text, project, query.SearchK)
	}()

	go func() {
		defer wg.Done()
		kwChunks = s.keywordSearch(ctx, query.Text, project)
	}()

	wg.Wait()

	merged := MergeResults(vecChunks, kwChunks)
	logger.Debug("merged %d vector + %d keyword results into %d chunks",
		len(vecChunks), len(kwChunks), len(merged))

	contextText := BuildContext(merged)
	citations := BuildCitations(merged)

	response, err := s.generate(ctx, contextText, query.Text)
	if err != nil {
		return domain.Answer{}, err
	}

	logger.Debug("grounding context was:\n%s", contextText)

	if len(citations) == 0 {
		citations = nil
	}
	return domain.Answer{ModelResponse: response, Sources: citations}, nil
}

// vectorSearch embeds the query and runs the similarity path.
// Best-effort: failures are logged and produce an empty result.
func (s *RetrievalService) vectorSearch(ctx context.Context, query, project string, topK int) []domain.Chunk {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("vector search: query embedding failed: %v", err)
		return nil
	}

	chunks, err := s.store.VectorSearch(ctx, embedding, project, topK)
	if err != nil {
		logger.Warn("vector search failed: %v", err)
		return nil
	}
	logger.Debug("vector search: %d chunks", len(chunks))
	return chunks
}

// keywordSearch runs the lexical path with the preprocessed query.
// Best-effort: failures are logged and produce an empty result.
func (s *RetrievalService) keywordSearch(ctx context.Context, query, project string) []domain.Chunk {
	keywords := KeywordQuery(query, project)
	if keywords == "" {
		logger.Debug("keyword search: no content-bearing tokens in query")
		return nil
	}
	logger.Debug("keyword search: %q", keywords)

	chunks, err := s.store.KeywordSearch(ctx, project, keywords, s.keywordK)
	if err != nil {
		logger.Warn("keyword search failed: %v", err)
		return nil
	}
	logger.Debug("keyword search: %d chunks", len(chunks))
	return chunks
}

// generate renders the answer prompt and invokes the language model
// under the configured deadline.
func (s *RetrievalService) generate(ctx context.Context, contextText, question string) (string, error) {
	template, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return "", fmt.Errorf("load answer prompt: %w", err)
	}
	prompt := fmt.Sprintf(template, contextText, question)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("model answer after %s: %w", s.timeout, domain.ErrRetrievalTimeout)
		}
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return response, nil
}

// noProjectResponse is the user-visible branch for queries that name no
// known project.
func noProjectResponse(projects []string) string {
	if len(projects) == 0 {
		return "no project identified in the question, and no corpus has been ingested yet"
	}
	sorted := make([]string, len(projects))
	copy(sorted, projects)
	sort.Strings(sorted)
	return fmt.Sprintf("no project identified in the question; known projects: %s", strings.Join(sorted, ", "))
}
