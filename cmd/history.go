package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [attempt-id]",
	Short: "List past attempts, or show one attempt in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, err := openServices(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			a, err := svc.performance.GetAttempt(ctx, svc.userID, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, a)
			}
			printAttempt(out, a)
			return nil
		}

		attempts, err := svc.performance.GetHistory(ctx, svc.userID, limit)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, attempts)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-8s  %5s  %4s  %s\n",
			"ID", "Date", "Type", "Score", "%", "Quiz")
		fmt.Fprintln(out, rule)
		for _, a := range attempts {
			fmt.Fprintf(out, "%-36s  %-16s  %-8s  %2d/%-2d  %3d%%  %s\n",
				a.ID,
				a.CreatedAt.Local().Format("2006-01-02 15:04"),
				a.ContentType.Label(),
				a.Score, a.TotalQuestions,
				a.Percentage,
				truncate(a.QuizTitle, 40),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().Bool("json", false, "Print as JSON")
}
