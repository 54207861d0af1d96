package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/grader"
	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/quizgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview <analysis.json>",
	Short: "Preview LLM-generated questions for an analysis (no database)",
	Long: `Generate questions for an analysis file and answer them in the terminal.

This is a stateless developer tool: nothing is saved and no LLM events are
logged. Useful for evaluating question quality and prompt changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 0, "Number of questions to request (default from SNAPQUIZ_QUESTION_COUNT)")
	previewCmd.Flags().Bool("reveal", false, "Print answers without asking")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	reveal, _ := cmd.Flags().GetBool("reveal")

	a, err := analysis.LoadFile(args[0])
	if err != nil {
		return err
	}

	// No EventRepo, so LLM logging is skipped.
	ctx := context.Background()
	log, err := logger.FromEnv()
	if err != nil {
		return err
	}
	defer log.Sync()
	provider, err := llm.NewProviderFromEnv(ctx, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	cfg := quizgen.ConfigFromEnv()
	if count > 0 {
		cfg.QuestionCount = count
	}
	gen := quizgen.NewService(quizgen.NewLLMSource(provider, cfg), nil, cfg, log)

	fmt.Printf("Content: %s (%s)\n", quizgen.Title(a.Summary), a.Type.Label())
	fmt.Printf("Generating %d questions...\n", cfg.QuestionCount)

	questions, err := gen.Draft(ctx, a)
	if err != nil {
		return err
	}
	for i := range questions {
		questions[i].ID = fmt.Sprintf("q%d", i+1)
		questions[i].Position = i
	}

	if reveal {
		printQuestions(os.Stdout, questions, true)
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]quiz.Answer, 0, len(questions))
	for i, q := range questions {
		fmt.Printf("\n-- Question %d/%d --\n", i+1, len(questions))
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			fmt.Printf("  %c) %s\n", 'A'+j, opt)
		}

		fmt.Print("\nYour answer (a-d, blank to skip): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		sel := quiz.Unanswered
		if in := strings.ToLower(strings.TrimSpace(scanner.Text())); len(in) == 1 && in[0] >= 'a' && in[0] <= 'd' {
			sel = int(in[0] - 'a')
		}
		answers = append(answers, quiz.Answer{QuestionID: q.ID, Selected: sel})
	}

	res, err := grader.Grade("preview", questions, answers)
	if err != nil {
		return err
	}
	fmt.Println()
	for i, r := range res.Answers {
		switch {
		case r.IsCorrect:
			fmt.Printf("%d. \033[32mcorrect\033[0m\n", i+1)
		case !r.Answered():
			fmt.Printf("%d. skipped, answer %c\n", i+1, 'A'+r.Correct)
		default:
			fmt.Printf("%d. \033[31mwrong\033[0m, answer %c\n", i+1, 'A'+r.Correct)
		}
		if r.Explanation != "" {
			fmt.Printf("   %s\n", r.Explanation)
		}
	}
	fmt.Printf("\n-- Summary: %d/%d correct (%d%%) --\n", res.Score, res.Total, res.Percentage)
	return nil
}
