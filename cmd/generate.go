package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/analysis"
)

var generateCmd = &cobra.Command{
	Use:   "generate <analysis.json>",
	Short: "Generate and save a quiz from a content analysis file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		historyID, _ := cmd.Flags().GetString("history-id")

		a, err := analysis.LoadFile(args[0])
		if err != nil {
			return err
		}

		svc, err := openServices(cmd, envOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer svc.Close()

		var hid *string
		if historyID != "" {
			hid = &historyID
		}
		q, questions, err := svc.quizzes.Generate(cmd.Context(), svc.userID, hid, a)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, map[string]any{"quiz": q, "questions": questions})
		}
		fmt.Fprintf(out, "Quiz:     %s\n", q.Title)
		fmt.Fprintf(out, "ID:       %s\n", q.ID)
		fmt.Fprintf(out, "Type:     %s\n", q.ContentType.Label())
		fmt.Fprintf(out, "Questions %d\n", q.TotalQuestions)
		printQuestions(out, questions, false)
		fmt.Fprintf(out, "\nAnswer with: snapquiz submit %s --answers a,b,c,...\n", q.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	generateCmd.Flags().String("history-id", "", "Link the quiz to a scan history entry")
}
