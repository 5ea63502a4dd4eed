package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 512, cfg.Chunking.Size)
	assert.Equal(t, 64, cfg.Chunking.Overlap)
	assert.Equal(t, 10, cfg.Retrieval.SearchK)
	assert.Equal(t, 30*time.Second, cfg.AnswerTimeout())
	assert.Equal(t, 3, cfg.Messages.Window)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "qdrant"

[storage.qdrant]
url = "http://qdrant.internal:6333"
collection = "docs"

[chunking]
size = 256
overlap = 32

[retrieval]
search_k = 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, BackendQdrant, cfg.Storage.Backend)
	assert.Equal(t, "http://qdrant.internal:6333", cfg.Storage.Qdrant.URL)
	assert.Equal(t, "docs", cfg.Storage.Qdrant.Collection)
	assert.Equal(t, 256, cfg.Chunking.Size)
	assert.Equal(t, 20, cfg.Retrieval.SearchK)
	// Untouched sections keep their defaults.
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"sqlite\"\n"), 0600))

	t.Setenv("RELATO_STORAGE_BACKEND", "qdrant")
	t.Setenv("RELATO_SEARCH_K", "25")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, BackendQdrant, cfg.Storage.Backend)
	assert.Equal(t, 25, cfg.Retrieval.SearchK)
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"mongo\"\n"), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	bad := Default()
	bad.Chunking.Size = 0
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Retrieval.TimeoutSeconds = 0
	assert.Error(t, bad.Validate())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ["), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}
