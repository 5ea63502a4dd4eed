package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupports(t *testing.T) {
	e := New()

	assert.True(t, e.Supports("doc.txt"))
	assert.True(t, e.Supports("doc.MD"))
	assert.False(t, e.Supports("doc.pdf"))
	assert.False(t, e.Supports("doc"))
}

func TestExtract_SinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("  contenido de la pagina  \n"), 0600))

	pages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "contenido de la pagina", pages[0].Text)
}

func TestExtract_PageBreaks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("primera\f\fsegunda"), 0600))

	pages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "primera", pages[0].Text)
	// Empty middle page is dropped but numbering stays positional.
	assert.Equal(t, 3, pages[1].Number)
	assert.Equal(t, "segunda", pages[1].Text)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.Error(t, err)
}
