package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage/memory"
	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return len(m.embedding) }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response string
	genErr   error
	blocking bool
	called   bool
}

func (m *mockLLMService) Generate(ctx context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	m.called = true
	if m.blocking {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.genErr != nil {
		return "", m.genErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct{}

func (m *mockPromptStore) Load(_ string) (string, error) {
	return "Contexto:\n%s\n\nPregunta: %s", nil
}

func (m *mockPromptStore) Reload() {}

// failingStore wraps the memory store and fails both search paths.
type failingStore struct {
	*memory.Store
}

func (f *failingStore) VectorSearch(_ context.Context, _ []float32, _ string, _ int) ([]domain.Chunk, error) {
	return nil, errors.New("vector backend down")
}

func (f *failingStore) KeywordSearch(_ context.Context, _, _ string, _ int) ([]domain.Chunk, error) {
	return nil, errors.New("keyword backend down")
}

// --- Fixtures ---

func seedNeurone(t *testing.T, store *memory.Store, embedding []float32) {
	t.Helper()
	chunks := []domain.Chunk{
		{
			ID:          "c1",
			Content:     "El sistema NEURONE utiliza MongoDB para almacenar los registros de navegacion.",
			ContentHash: domain.HashContent("c1"),
			Embedding:   embedding,
			Metadata: map[string]any{
				domain.MetaProject: "neurone",
				domain.MetaTitle:   "arquitectura del sistema",
				domain.MetaAuthor:  "gomez",
				domain.MetaYear:    "2019",
				domain.MetaPage:    4,
			},
		},
		{
			ID:          "c2",
			Content:     "Las tecnologias empleadas incluyen Meteor y Node.js.",
			ContentHash: domain.HashContent("c2"),
			Embedding:   embedding,
			Metadata: map[string]any{
				domain.MetaProject: "neurone",
				domain.MetaTitle:   "arquitectura del sistema",
				domain.MetaAuthor:  "gomez",
				domain.MetaYear:    "2019",
				domain.MetaPage:    5,
			},
		},
	}
	_, err := store.AddChunks(context.Background(), chunks)
	require.NoError(t, err)
}

// --- Tests ---

func TestResolveProject(t *testing.T) {
	projects := []string{"neurone", "apiuc"}

	project, ok := ResolveProject("¿Qué base de datos usa NEURONE?", projects)
	assert.True(t, ok)
	assert.Equal(t, "neurone", project)

	_, ok = ResolveProject("pregunta sin proyecto", projects)
	assert.False(t, ok)

	// First listed project wins when several match.
	project, ok = ResolveProject("compara neurone con apiuc", projects)
	assert.True(t, ok)
	assert.Equal(t, "neurone", project)
}

func TestAsk_InvalidQuery(t *testing.T) {
	svc := NewRetrievalService(memory.NewStore(), &mockEmbeddingService{}, &mockLLMService{}, &mockPromptStore{})

	_, err := svc.Ask(context.Background(), domain.Query{Text: "   ", SearchK: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ask(context.Background(), domain.Query{Text: "pregunta neurone", SearchK: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_NoProjectNamed(t *testing.T) {
	store := memory.NewStore()
	embedding := []float32{1, 0, 0}
	seedNeurone(t, store, embedding)

	llm := &mockLLMService{response: "should not be used"}
	svc := NewRetrievalService(store, &mockEmbeddingService{embedding: embedding}, llm, &mockPromptStore{})

	answer, err := svc.Ask(context.Background(), domain.Query{Text: "¿qué tecnologías se usaron?", SearchK: 10})

	require.NoError(t, err)
	assert.False(t, llm.called, "model must not be invoked without a project scope")
	assert.Contains(t, answer.ModelResponse, "neurone")
	assert.Nil(t, answer.Sources)
}

func TestAsk_AnswersWithCitations(t *testing.T) {
	store := memory.NewStore()
	embedding := []float32{1, 0, 0}
	seedNeurone(t, store, embedding)

	llm := &mockLLMService{response: "NEURONE usa MongoDB."}
	svc := NewRetrievalService(store, &mockEmbeddingService{embedding: embedding}, llm, &mockPromptStore{})

	answer, err := svc.Ask(context.Background(), domain.Query{
		Text:    "¿Qué base de datos usa el proyecto neurone?",
		SearchK: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "NEURONE usa MongoDB.", answer.ModelResponse)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "Arquitectura Del Sistema", answer.Sources[0].Title)
	assert.Equal(t, "Gomez", answer.Sources[0].Author)
	assert.Equal(t, "2019", answer.Sources[0].Year)
	assert.Equal(t, []int{4, 5}, answer.Sources[0].Pages)
}

func TestAsk_DegradesWhenSearchFails(t *testing.T) {
	store := memory.NewStore()
	embedding := []float32{1, 0, 0}
	seedNeurone(t, store, embedding)

	llm := &mockLLMService{response: "sin contexto disponible"}
	svc := NewRetrievalService(
		&failingStore{Store: store},
		&mockEmbeddingService{embedding: embedding},
		llm,
		&mockPromptStore{},
	)

	answer, err := svc.Ask(context.Background(), domain.Query{Text: "pregunta sobre neurone", SearchK: 10})

	require.NoError(t, err, "search failures must not fail the query")
	assert.True(t, llm.called)
	assert.Equal(t, "sin contexto disponible", answer.ModelResponse)
	assert.Nil(t, answer.Sources)
}

func TestAsk_ModelTimeout(t *testing.T) {
	store := memory.NewStore()
	embedding := []float32{1, 0, 0}
	seedNeurone(t, store, embedding)

	svc := NewRetrievalService(
		store,
		&mockEmbeddingService{embedding: embedding},
		&mockLLMService{blocking: true},
		&mockPromptStore{},
		WithAnswerTimeout(20*time.Millisecond),
	)

	_, err := svc.Ask(context.Background(), domain.Query{Text: "pregunta sobre neurone", SearchK: 10})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRetrievalTimeout)
}

func TestAsk_ModelError(t *testing.T) {
	store := memory.NewStore()
	embedding := []float32{1, 0, 0}
	seedNeurone(t, store, embedding)

	svc := NewRetrievalService(
		store,
		&mockEmbeddingService{embedding: embedding},
		&mockLLMService{genErr: errors.New("model unavailable")},
		&mockPromptStore{},
	)

	_, err := svc.Ask(context.Background(), domain.Query{Text: "pregunta sobre neurone", SearchK: 10})

	assert.Error(t, err)
}
