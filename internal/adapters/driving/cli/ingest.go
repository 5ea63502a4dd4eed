package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [corpus-dir]",
	Short: "Ingest a document corpus",
	Long: `Loads every supported file under the given directory, splits it into
chunks, skips content already present in the store and persists the
rest with embeddings. Each first-level subdirectory becomes a project.

Re-running over the same corpus is safe: unchanged content is
recognised by its fingerprint and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var messagesCmd = &cobra.Command{
	Use:   "messages [chat-log.json]",
	Short: "Ingest a chat-log export",
	Long: `Loads a JSON chat-log export and persists windowed message chunks.
Each chunk carries a central message with its surrounding conversation
context from the same chat.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestMessages,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.AddCommand(messagesCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	added, err := ingestService.IngestDocuments(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d new chunks.\n", added)
	return nil
}

func runIngestMessages(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	added, err := ingestService.IngestMessages(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest messages failed: %w", err)
	}

	cmd.Printf("Ingested %d new chunks.\n", added)
	return nil
}
