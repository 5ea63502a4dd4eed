package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every ingested chunk",
	Long: `Removes all chunks from the store. The corpus itself is untouched and
can be re-ingested afterwards.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if !resetYes {
		cmd.Print("This deletes all ingested chunks. Continue? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	removed, err := ingestService.Reset(cmd.Context())
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	cmd.Printf("Removed %d chunks.\n", removed)
	return nil
}
