package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

func docChunk(content, title, author, year string, page int) domain.Chunk {
	return domain.Chunk{
		ID:          content,
		Content:     content,
		ContentHash: domain.HashContent(content),
		Metadata: map[string]any{
			domain.MetaProject: "neurone",
			domain.MetaTitle:   title,
			domain.MetaAuthor:  author,
			domain.MetaYear:    year,
			domain.MetaPage:    page,
		},
	}
}

func TestMergeResults_VectorPriority(t *testing.T) {
	shared := docChunk("shared text", "paper a", "gomez", "2019", 1)
	vector := []domain.Chunk{
		docChunk("vector only", "paper a", "gomez", "2019", 2),
		shared,
	}
	keyword := []domain.Chunk{
		shared,
		docChunk("keyword only", "paper b", "rios", "2020", 7),
	}

	merged := MergeResults(vector, keyword)

	require.Len(t, merged, 3)
	assert.Equal(t, "vector only", merged[0].Content)
	assert.Equal(t, "shared text", merged[1].Content)
	assert.Equal(t, "keyword only", merged[2].Content)
}

func TestMergeResults_KeepsHashlessChunks(t *testing.T) {
	merged := MergeResults(
		[]domain.Chunk{{Content: "a"}},
		[]domain.Chunk{{Content: "b"}},
	)

	assert.Len(t, merged, 2)
}

func TestBuildContext_JoinsInOrder(t *testing.T) {
	chunks := []domain.Chunk{
		{Content: "first"},
		{Content: ""},
		{Content: "second"},
	}

	assert.Equal(t, "first\n\nsecond", BuildContext(chunks))
}

func TestBuildCitations_GroupsByTitle(t *testing.T) {
	chunks := []domain.Chunk{
		docChunk("c1", "search interfaces", "gomez", "2019", 3),
		docChunk("c2", "search interfaces", "gomez", "2019", 1),
		docChunk("c3", "search interfaces", "gomez", "2019", 3),
		docChunk("c4", "eye tracking study", "rios", "2021", 12),
	}

	citations := BuildCitations(chunks)

	require.Len(t, citations, 2)
	assert.Equal(t, "Search Interfaces", citations[0].Title)
	assert.Equal(t, "Gomez", citations[0].Author)
	assert.Equal(t, "2019", citations[0].Year)
	assert.Equal(t, []int{1, 3}, citations[0].Pages)
	assert.Equal(t, "Eye Tracking Study", citations[1].Title)
	assert.Equal(t, []int{12}, citations[1].Pages)
}

func TestBuildCitations_NormalisesTitleCase(t *testing.T) {
	chunks := []domain.Chunk{
		docChunk("c1", "search interfaces", "gomez", "2019", 1),
		docChunk("c2", "SEARCH INTERFACES", "gomez", "2019", 2),
	}

	citations := BuildCitations(chunks)

	require.Len(t, citations, 1)
	assert.Equal(t, []int{1, 2}, citations[0].Pages)
}

func TestBuildCitations_SkipsChatChunks(t *testing.T) {
	chunks := []domain.Chunk{
		{
			Content:     "alice: hola\nbob: hola",
			ContentHash: domain.HashContent("alice: hola\nbob: hola"),
			Metadata: map[string]any{
				domain.MetaChatID: "chat-1",
			},
		},
	}

	assert.Empty(t, BuildCitations(chunks))
}
