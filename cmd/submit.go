package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/quiz"
)

var submitCmd = &cobra.Command{
	Use:   "submit <quiz-id>",
	Short: "Grade a set of answers for a saved quiz",
	Long: `Grade answers for a saved quiz and record the attempt.

Answers are given in question order, for example --answers a,c,- or
--answers 0,2,-1. A dash or -1 leaves the question unanswered; missing
trailing answers are unanswered too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")
		seconds, _ := cmd.Flags().GetInt("time")
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, err := openServices(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		_, questions, err := svc.quizzes.Get(ctx, svc.userID, args[0])
		if err != nil {
			return err
		}
		answers, err := parseAnswers(raw, questions)
		if err != nil {
			return err
		}

		a, err := svc.grader.Submit(ctx, args[0], svc.userID, answers, seconds)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, a)
		}
		printAttempt(out, a)
		return nil
	},
}

func printAttempt(out io.Writer, a *quiz.Attempt) {
	fmt.Fprintf(out, "Score:    %d / %d (%d%%)\n", a.Score, a.TotalQuestions, a.Percentage)
	fmt.Fprintf(out, "Time:     %ds\n", a.TimeTakenSeconds)
	fmt.Fprintf(out, "Attempt:  %s\n", a.ID)
	fmt.Fprintln(out, rule)
	for i, r := range a.Answers {
		status := "wrong"
		switch {
		case !r.Answered():
			status = "skipped"
		case r.IsCorrect:
			status = "correct"
		}
		chosen := "-"
		if r.Answered() {
			chosen = string(rune('A' + r.Selected))
		}
		fmt.Fprintf(out, "%2d. %-8s chose %s, answer %c  %s\n", i+1, status, chosen, 'A'+r.Correct, r.Question)
	}
}

func init() {
	submitCmd.Flags().StringP("answers", "a", "", "Comma-separated selections in question order")
	submitCmd.Flags().Int("time", 0, "Time taken in seconds")
	submitCmd.Flags().Bool("json", false, "Print the attempt as JSON")
	_ = submitCmd.MarkFlagRequired("answers")
}
