package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, err := openServices(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.performance.GetPerformance(cmd.Context(), svc.userID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, p)
		}
		if !p.Overall.HasData {
			fmt.Fprintln(out, "No data yet. Finish a quiz to see your stats.")
			return nil
		}

		fmt.Fprintln(out, "Overall")
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "Attempts  %d\n", p.Overall.TotalAttempts)
		fmt.Fprintf(out, "Average   %.1f%%\n", p.Overall.AvgScore)
		fmt.Fprintf(out, "Best      %d%%\n", p.Overall.BestScore)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "By content type")
		fmt.Fprintln(out, rule)
		for _, st := range p.ByContentType {
			fmt.Fprintf(out, "%-10s  %4d attempts  %5.1f%%\n", st.ContentType.Label(), st.Attempts, st.AvgScore)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent trend (oldest first)")
		fmt.Fprintln(out, rule)
		if !p.RecentTrend.Chartable {
			fmt.Fprintln(out, "Take at least two quizzes to see a trend.")
			return nil
		}
		for _, pt := range p.RecentTrend.Points {
			fmt.Fprintf(out, "%3d%%  %s\n", pt.Percentage, truncate(pt.QuizTitle, 50))
		}
		fmt.Fprintf(out, "avg   %.1f%%\n", p.RecentTrend.Average)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print as JSON")
}
