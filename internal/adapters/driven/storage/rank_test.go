package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{1}), "length mismatch")
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}), "zero vector")
}

func TestTopByCosine_DropsZeroSimilarity(t *testing.T) {
	chunks := []domain.Chunk{
		{ID: "hit", Embedding: []float32{1, 0}},
		{ID: "orthogonal", Embedding: []float32{0, 1}},
		{ID: "none"},
	}

	results := TopByCosine(chunks, []float32{1, 0}, 10)

	require.Len(t, results, 1)
	assert.Equal(t, "hit", results[0].ID)
}

func TestTopByKeywords_FoldsDiacritics(t *testing.T) {
	chunks := []domain.Chunk{
		{ID: "1", Content: "Las tecnologías del sistema"},
		{ID: "2", Content: "nada que ver"},
	}

	results := TopByKeywords(chunks, "tecnologias", 10)

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
}

func TestTopByKeywords_EmptyQuery(t *testing.T) {
	chunks := []domain.Chunk{{ID: "1", Content: "algo"}}

	assert.Nil(t, TopByKeywords(chunks, "   ", 10))
}
