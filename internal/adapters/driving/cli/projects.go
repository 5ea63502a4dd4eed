package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the ingested projects",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	projects, err := ingestService.Projects(cmd.Context())
	if err != nil {
		return fmt.Errorf("list projects failed: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No projects ingested yet.")
		return nil
	}

	for _, p := range projects {
		cmd.Println(p)
	}
	return nil
}
