package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

func chunk(id, content, project string, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:          id,
		Content:     content,
		ContentHash: domain.HashContent(content),
		Embedding:   embedding,
		Metadata: map[string]any{
			domain.MetaProject: project,
		},
	}
}

func TestAddChunks_SkipsDuplicateHashes(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ids, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("1", "contenido", "p", nil),
		chunk("2", "contenido", "p", nil), // same content, same hash
		chunk("3", "otro contenido", "p", nil),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids)

	hashes, err := store.FetchHashes(ctx)
	require.NoError(t, err)
	assert.Len(t, hashes, 2)
}

func TestClear(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("1", "a", "p", nil),
		chunk("2", "b", "p", nil),
	})
	require.NoError(t, err)

	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	hashes, err := store.FetchHashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestListProjects(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("1", "a", "neurone", nil),
		chunk("2", "b", "neurone", nil),
		chunk("3", "c", "apiuc", nil),
		{ID: "4", Content: "d", ContentHash: domain.HashContent("d")}, // no project
	})
	require.NoError(t, err)

	projects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"neurone", "apiuc"}, projects)
}

func TestVectorSearch_RanksByCosine(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("near", "texto cercano", "p", []float32{1, 0}),
		chunk("far", "texto lejano", "p", []float32{0.1, 0.9}),
		chunk("other", "otro proyecto", "q", []float32{1, 0}),
	})
	require.NoError(t, err)

	results, err := store.VectorSearch(ctx, []float32{1, 0}, "p", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "near", results[0].ID)
	assert.Equal(t, "far", results[1].ID)
}

func TestKeywordSearch_ScopesToProject(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("1", "El sistema usa MongoDB", "p", nil),
		chunk("2", "El sistema usa MongoDB y Meteor", "p", nil),
		chunk("3", "MongoDB en otro proyecto", "q", nil),
	})
	require.NoError(t, err)

	results, err := store.KeywordSearch(ctx, "p", "mongodb meteor", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].ID, "chunk matching more tokens ranks first")
}

func TestKeywordSearch_TopK(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.AddChunks(ctx, []domain.Chunk{
		chunk("1", "mongodb a", "p", nil),
		chunk("2", "mongodb b", "p", nil),
		chunk("3", "mongodb c", "p", nil),
	})
	require.NoError(t, err)

	results, err := store.KeywordSearch(ctx, "p", "mongodb", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
