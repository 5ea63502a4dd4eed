// Package config loads the relato configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/relato-labs/relato-cli/internal/logger"
)

// Backend names accepted by the storage section.
const (
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
)

// Config is the full relato configuration.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Messages  MessagesConfig  `toml:"messages"`
}

// StorageConfig selects and configures the chunk store backend.
type StorageConfig struct {
	// Backend is "sqlite" (embedded, default) or "qdrant" (remote).
	Backend string       `toml:"backend"`
	DataDir string       `toml:"data_dir"`
	Qdrant  QdrantConfig `toml:"qdrant"`
}

// QdrantConfig holds connection settings for the remote backend.
type QdrantConfig struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	Collection string `toml:"collection"`
}

// EmbeddingConfig configures the embedding service.
type EmbeddingConfig struct {
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// LLMConfig configures the answer-generating model.
type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ChunkingConfig controls document splitting.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls search and answer generation.
type RetrievalConfig struct {
	SearchK        int `toml:"search_k"`
	KeywordK       int `toml:"keyword_k"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// MessagesConfig controls chat log ingestion.
type MessagesConfig struct {
	// Window is the number of neighbouring messages included on each
	// side of the central message of a chunk.
	Window int `toml:"window"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Qdrant: QdrantConfig{
				URL:        "http://localhost:6333",
				Collection: "relato_chunks",
			},
		},
		Embedding: EmbeddingConfig{
			Model:      "jina/jina-embeddings-v2-base-es",
			Dimensions: 768,
		},
		LLM: LLMConfig{
			Model: "llama3.2",
		},
		Chunking: ChunkingConfig{
			Size:    512,
			Overlap: 64,
		},
		Retrieval: RetrievalConfig{
			SearchK:        10,
			KeywordK:       5,
			TimeoutSeconds: 30,
		},
		Messages: MessagesConfig{
			Window: 3,
		},
	}
}

// Load reads the configuration file at path, falling back to
// ~/.relato/config.toml when path is empty. A missing file yields the
// defaults. A .env file in the working directory and RELATO_*
// environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	// Best effort: a missing .env is the common case.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("Skipping .env: %v", err)
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".relato", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("No config file at %s, using defaults", path)
	case err != nil:
		return cfg, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Storage.Backend != BackendSQLite && c.Storage.Backend != BackendQdrant {
		return fmt.Errorf("unknown storage backend %q (want %q or %q)",
			c.Storage.Backend, BackendSQLite, BackendQdrant)
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("chunking overlap must not be negative, got %d", c.Chunking.Overlap)
	}
	if c.Retrieval.SearchK <= 0 {
		return fmt.Errorf("retrieval search_k must be positive, got %d", c.Retrieval.SearchK)
	}
	if c.Retrieval.TimeoutSeconds <= 0 {
		return fmt.Errorf("retrieval timeout_seconds must be positive, got %d", c.Retrieval.TimeoutSeconds)
	}
	return nil
}

// AnswerTimeout returns the retrieval timeout as a duration.
func (c *Config) AnswerTimeout() time.Duration {
	return time.Duration(c.Retrieval.TimeoutSeconds) * time.Second
}

// applyEnv overrides file values with RELATO_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Storage.Backend, "RELATO_STORAGE_BACKEND")
	setString(&c.Storage.DataDir, "RELATO_DATA_DIR")
	setString(&c.Storage.Qdrant.URL, "RELATO_QDRANT_URL")
	setString(&c.Storage.Qdrant.APIKey, "RELATO_QDRANT_API_KEY")
	setString(&c.Storage.Qdrant.Collection, "RELATO_QDRANT_COLLECTION")
	setString(&c.Embedding.BaseURL, "RELATO_EMBEDDING_BASE_URL")
	setString(&c.Embedding.Model, "RELATO_EMBEDDING_MODEL")
	setInt(&c.Embedding.Dimensions, "RELATO_EMBEDDING_DIMENSIONS")
	setString(&c.LLM.BaseURL, "RELATO_LLM_BASE_URL")
	setString(&c.LLM.Model, "RELATO_LLM_MODEL")
	setInt(&c.Retrieval.SearchK, "RELATO_SEARCH_K")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}
