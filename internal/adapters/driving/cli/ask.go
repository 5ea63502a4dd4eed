package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// defaultSearchK comes from configuration; the flag overrides it.
var defaultSearchK = 10

var (
	askK    int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about an ingested project",
	Long: `Answers a question grounded on the ingested corpus. The question must
name one of the known projects; retrieval is scoped to that project and
the answer cites the documents it was grounded on.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askK, "top-k", "k", 0, "number of similarity results to retrieve")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	k := askK
	if k <= 0 {
		k = defaultSearchK
	}

	answer, err := askService.Ask(cmd.Context(), domain.Query{
		Text:    args[0],
		SearchK: k,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(strings.TrimSpace(answer.ModelResponse))

	if len(answer.Sources) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for _, src := range answer.Sources {
		line := "  - " + src.Title
		if src.Author != "" {
			line += " (" + src.Author
			if src.Year != "" {
				line += ", " + src.Year
			}
			line += ")"
		} else if src.Year != "" {
			line += " (" + src.Year + ")"
		}
		if len(src.Pages) > 0 {
			pages := make([]string, len(src.Pages))
			for i, p := range src.Pages {
				pages[i] = fmt.Sprintf("%d", p)
			}
			line += ", pages " + strings.Join(pages, ", ")
		}
		cmd.Println(line)
		if src.Link != "" {
			cmd.Printf("    %s\n", src.Link)
		}
	}
	return nil
}
