// Package cli provides the relato command-line interface.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/relato-labs/relato-cli/internal/adapters/driven/config/file"
	"github.com/relato-labs/relato-cli/internal/adapters/driven/corpus/chatlog"
	"github.com/relato-labs/relato-cli/internal/adapters/driven/corpus/extract/plaintext"
	"github.com/relato-labs/relato-cli/internal/adapters/driven/corpus/filesystem"
	embeddingollama "github.com/relato-labs/relato-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/relato-labs/relato-cli/internal/adapters/driven/llm/ollama"
	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage/qdrant"
	"github.com/relato-labs/relato-cli/internal/adapters/driven/storage/sqlite"
	"github.com/relato-labs/relato-cli/internal/config"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
	"github.com/relato-labs/relato-cli/internal/core/ports/driving"
	"github.com/relato-labs/relato-cli/internal/core/services"
	"github.com/relato-labs/relato-cli/internal/logger"
	"github.com/relato-labs/relato-cli/internal/postprocessors"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

// Services wired for the command handlers.
var (
	ingestService driving.IngestService
	askService    driving.AskService

	chunkStore  driven.ChunkStore
	promptStore *file.PromptStore
)

var rootCmd = &cobra.Command{
	Use:   "relato",
	Short: "Question answering over your document corpus",
	Long: `Relato ingests document collections and chat logs into a local or
remote vector store and answers questions about them, citing the
sources the answer was grounded on.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices(cmd.Context())
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.relato/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads the configuration and wires the service graph.
func initServices(ctx context.Context) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	embedder := embeddingollama.NewEmbeddingService(embeddingollama.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})

	llm := llmollama.NewLLMService(llmollama.LLMConfig{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("create prompt store: %w", err)
	}
	if err := prompts.Watch(); err != nil {
		logger.Warn("Prompt watch unavailable: %v", err)
	}
	promptStore = prompts

	store, err := openStore(ctx, cfg, embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("open chunk store: %w", err)
	}
	chunkStore = store

	pipeline := postprocessors.NewDefaultPipeline(cfg.Chunking.Size, cfg.Chunking.Overlap)
	loader := filesystem.NewLoader(plaintext.New())

	ingestService = services.NewIngestService(
		store, embedder, pipeline, loader, chatlog.NewLoader(),
		services.WithMessageWindow(cfg.Messages.Window),
	)
	askService = services.NewRetrievalService(
		store, embedder, llm, prompts,
		services.WithKeywordK(cfg.Retrieval.KeywordK),
		services.WithAnswerTimeout(time.Duration(cfg.Retrieval.TimeoutSeconds)*time.Second),
	)

	defaultSearchK = cfg.Retrieval.SearchK
	return nil
}

// openStore selects the chunk store backend from configuration.
func openStore(ctx context.Context, cfg config.Config, dimensions int) (driven.ChunkStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendQdrant:
		logger.Debug("Using qdrant backend at %s", cfg.Storage.Qdrant.URL)
		return qdrant.NewStore(ctx, qdrant.Config{
			URL:        cfg.Storage.Qdrant.URL,
			APIKey:     cfg.Storage.Qdrant.APIKey,
			Collection: cfg.Storage.Qdrant.Collection,
			Dimensions: dimensions,
		})
	default:
		logger.Debug("Using sqlite backend")
		return sqlite.NewStore(cfg.Storage.DataDir)
	}
}

// closeServices releases wired resources.
func closeServices() {
	if chunkStore != nil {
		if err := chunkStore.Close(); err != nil {
			logger.Warn("Closing chunk store: %v", err)
		}
	}
	if promptStore != nil {
		if err := promptStore.Close(); err != nil {
			logger.Warn("Closing prompt store: %v", err)
		}
	}
}
