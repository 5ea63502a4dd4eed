package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage/memory"
	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/postprocessors"
)

// mockCorpusLoader implements driven.CorpusLoader for testing.
type mockCorpusLoader struct {
	docs    []domain.SourceDocument
	loadErr error
}

func (m *mockCorpusLoader) Load(_ context.Context, _ string) ([]domain.SourceDocument, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.docs, nil
}

// mockMessageLoader implements driven.MessageLoader for testing.
type mockMessageLoader struct {
	messages []domain.Message
	loadErr  error
}

func (m *mockMessageLoader) Load(_ context.Context, _ string) ([]domain.Message, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.messages, nil
}

func testDoc() domain.SourceDocument {
	return domain.SourceDocument{
		Project: "neurone",
		Author:  "gomez",
		Year:    "2019",
		Title:   "arquitectura del sistema",
		Source:  "corpus/neurone/2019_gomez_arquitectura.txt",
		Pages: []domain.PageText{
			{Number: 1, Text: "El sistema NEURONE utiliza MongoDB para almacenar registros."},
			{Number: 2, Text: "Las tecnologias empleadas incluyen Meteor y Node.js."},
		},
	}
}

func newTestIngest(store *memory.Store, loader *mockCorpusLoader, msgs *mockMessageLoader) *IngestService {
	return NewIngestService(
		store,
		&mockEmbeddingService{embedding: []float32{1, 0, 0}},
		postprocessors.NewDefaultPipeline(0, 0),
		loader,
		msgs,
	)
}

func TestIngestDocuments_PersistsChunks(t *testing.T) {
	store := memory.NewStore()
	svc := newTestIngest(store, &mockCorpusLoader{docs: []domain.SourceDocument{testDoc()}}, &mockMessageLoader{})

	added, err := svc.IngestDocuments(context.Background(), "corpus")

	require.NoError(t, err)
	assert.Equal(t, 2, added)

	projects, err := store.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"neurone"}, projects)

	hashes, err := store.FetchHashes(context.Background())
	require.NoError(t, err)
	assert.Len(t, hashes, 2)
}

func TestIngestDocuments_Idempotent(t *testing.T) {
	store := memory.NewStore()
	svc := newTestIngest(store, &mockCorpusLoader{docs: []domain.SourceDocument{testDoc()}}, &mockMessageLoader{})

	first, err := svc.IngestDocuments(context.Background(), "corpus")
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	second, err := svc.IngestDocuments(context.Background(), "corpus")
	require.NoError(t, err)
	assert.Equal(t, 0, second, "re-ingesting an unchanged corpus must add nothing")
}

func TestIngestDocuments_LoadFailure(t *testing.T) {
	svc := newTestIngest(memory.NewStore(), &mockCorpusLoader{loadErr: errors.New("no such directory")}, &mockMessageLoader{})

	_, err := svc.IngestDocuments(context.Background(), "missing")

	assert.Error(t, err)
}

func TestIngestMessages_PersistsWindowedChunks(t *testing.T) {
	store := memory.NewStore()
	messages := []domain.Message{
		msg("a", "1", "alice", "hola equipo", "2023-01-01T10:00:00Z"),
		msg("a", "2", "bob", "revisemos el informe", "2023-01-01T10:01:00Z"),
		msg("a", "3", "alice", "lo enviare hoy", "2023-01-01T10:02:00Z"),
	}
	svc := NewIngestService(
		store,
		&mockEmbeddingService{embedding: []float32{1, 0, 0}},
		postprocessors.NewDefaultPipeline(0, 0),
		&mockCorpusLoader{},
		&mockMessageLoader{messages: messages},
		WithMessageWindow(1),
	)

	added, err := svc.IngestMessages(context.Background(), "chat.json")

	require.NoError(t, err)
	assert.Equal(t, 3, added)

	// Second run finds only duplicates.
	again, err := svc.IngestMessages(context.Background(), "chat.json")
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestReset_RemovesEverything(t *testing.T) {
	store := memory.NewStore()
	svc := newTestIngest(store, &mockCorpusLoader{docs: []domain.SourceDocument{testDoc()}}, &mockMessageLoader{})

	_, err := svc.IngestDocuments(context.Background(), "corpus")
	require.NoError(t, err)

	removed, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	hashes, err := store.FetchHashes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hashes)
}
