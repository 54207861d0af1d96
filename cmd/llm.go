package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/quizgen"
	"github.com/abhisek/snapquiz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the AI calls made while generating quizzes",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quiz generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		return withEvents(cmd, func(ctx context.Context, events store.EventRepo) error {
			list, err := events.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			printGenerationCalls(out, list, failedOnly)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one generation call and the questions it drafted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}
		raw, _ := cmd.Flags().GetBool("raw")

		return withEvents(cmd, func(ctx context.Context, events store.EventRepo) error {
			e, err := events.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			printGenerationCall(cmd.OutOrStdout(), e, raw)
			return nil
		})
	},
}

var llmUsageCmd = &cobra.Command{
	Use:     "usage",
	Aliases: []string{"stats"},
	Short:   "Show token usage and estimated cost of quiz generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		return withEvents(cmd, func(ctx context.Context, events store.EventRepo) error {
			byModel, err := events.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			all, err := events.QueryLLMEvents(ctx, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			r := buildUsageReport(byModel, all)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, r)
			}
			printUsageReport(out, r)
			return nil
		})
	},
}

// withEvents opens the store just long enough to run fn.
func withEvents(cmd *cobra.Command, fn func(ctx context.Context, events store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo())
}

// draftedQuestions counts the questions in a stored response body, or
// returns -1 when the body is not a quiz response.
func draftedQuestions(e store.LLMRequestEvent) int {
	if !e.Success || e.ResponseBody == "" {
		return -1
	}
	cands, err := quizgen.ParseQuestions([]byte(e.ResponseBody))
	if err != nil {
		return -1
	}
	return len(cands)
}

func printGenerationCalls(w io.Writer, events []store.LLMRequestEvent, failedOnly bool) {
	shown := 0
	for _, e := range events {
		if failedOnly && e.Success {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "%-5s  %-16s  %-26s  %13s  %6s  %4s  %s\n",
				"ID", "Time", "Model", "Tokens in/out", "Ms", "Qs", "Status")
			fmt.Fprintln(w, rule)
		}
		shown++

		qs := "-"
		if n := draftedQuestions(e); n >= 0 {
			qs = strconv.Itoa(n)
		}
		status := "ok"
		if !e.Success {
			status = "failed: " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-26s  %13s  %6d  %4s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(e.Model, 26),
			fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
			e.LatencyMs,
			qs,
			status,
		)
	}
	if shown == 0 {
		fmt.Fprintln(w, "No quiz generation calls recorded.")
	}
}

func printGenerationCall(w io.Writer, e *store.LLMRequestEvent, raw bool) {
	fmt.Fprintf(w, "Call %d  (%s)\n", e.ID, e.Purpose)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Time      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Model     %s via %s\n", e.Model, e.Provider)
	fmt.Fprintf(w, "Tokens    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency   %dms\n", e.LatencyMs)
	if cost := llm.LookupCost(e.Model); cost != nil {
		fmt.Fprintf(w, "Cost      %s\n", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	if !e.Success {
		fmt.Fprintf(w, "Error     %s\n", e.ErrorMessage)
	}

	if !raw {
		if cands, err := quizgen.ParseQuestions([]byte(e.ResponseBody)); err == nil && e.ResponseBody != "" {
			fmt.Fprintf(w, "\nDrafted %d question%s (before validation)\n", len(cands), plural(len(cands)))
			for i, c := range cands {
				q := c.Question()
				if c.CorrectOption < 0 || c.CorrectOption >= len(q.Options) {
					q.CorrectOption = -1
				}
				fmt.Fprintf(w, "\n%d. %s  [%s]\n", i+1, q.Text, q.Difficulty)
				for j, opt := range q.Options {
					mark := " "
					if j == q.CorrectOption {
						mark = "*"
					}
					fmt.Fprintf(w, "   %s %c) %s\n", mark, 'A'+j, opt)
				}
				if extra := len(c.Options) - len(q.Options); extra > 0 {
					fmt.Fprintf(w, "     (+%d extra option%s dropped)\n", extra, plural(extra))
				}
			}
			return
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Request")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, orNotCaptured(e.RequestBody))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Response")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, orNotCaptured(e.ResponseBody))
}

func orNotCaptured(s string) string {
	if s == "" {
		return "(not captured)"
	}
	return s
}

// modelUsage is one row of the per-model cost table. Cost is nil when
// the model has no known pricing.
type modelUsage struct {
	Model        string   `json:"model"`
	Calls        int      `json:"calls"`
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	CostUSD      *float64 `json:"cost_usd"`
}

// usageReport summarizes what quiz generation has cost so far.
type usageReport struct {
	Calls          int          `json:"calls"`
	Failed         int          `json:"failed"`
	Drafted        int          `json:"questions_drafted"`
	InputTokens    int          `json:"input_tokens"`
	OutputTokens   int          `json:"output_tokens"`
	CostUSD        float64      `json:"cost_usd"`
	CostPerQuizUSD float64      `json:"cost_per_quiz_usd"`
	Partial        bool         `json:"partial"`
	Models         []modelUsage `json:"models"`
}

func buildUsageReport(byModel []store.LLMUsage, events []store.LLMRequestEvent) usageReport {
	r := usageReport{Models: []modelUsage{}}
	for _, u := range byModel {
		row := modelUsage{Model: u.Model, Calls: u.Calls, InputTokens: u.InputTokens, OutputTokens: u.OutputTokens}
		if cost := llm.LookupCost(u.Model); cost != nil {
			c := cost.Cost(u.InputTokens, u.OutputTokens)
			row.CostUSD = &c
			r.CostUSD += c
		} else {
			r.Partial = true
		}
		r.InputTokens += u.InputTokens
		r.OutputTokens += u.OutputTokens
		r.Models = append(r.Models, row)
	}

	for _, e := range events {
		if e.Purpose != quizgen.Purpose {
			continue
		}
		r.Calls++
		if !e.Success {
			r.Failed++
			continue
		}
		if n := draftedQuestions(e); n > 0 {
			r.Drafted += n
		}
	}
	if ok := r.Calls - r.Failed; ok > 0 {
		r.CostPerQuizUSD = r.CostUSD / float64(ok)
	}
	return r
}

func printUsageReport(w io.Writer, r usageReport) {
	if r.Calls == 0 && len(r.Models) == 0 {
		fmt.Fprintln(w, "No quiz generation calls recorded.")
		return
	}

	fmt.Fprintln(w, "Quiz generation")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Calls       %d (%d failed)\n", r.Calls, r.Failed)
	fmt.Fprintf(w, "Questions   %d drafted\n", r.Drafted)
	fmt.Fprintf(w, "Tokens      %d in / %d out\n", r.InputTokens, r.OutputTokens)
	label := ""
	if r.Partial {
		label = " (partial)"
	}
	fmt.Fprintf(w, "Cost        %s%s\n", formatCost(r.CostUSD), label)
	if r.Calls > r.Failed {
		fmt.Fprintf(w, "Per quiz    %s\n", formatCost(r.CostPerQuizUSD))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule)
	var unknown []string
	for _, m := range r.Models {
		cost := "?"
		if m.CostUSD != nil {
			cost = formatCost(*m.CostUSD)
		} else {
			unknown = append(unknown, m.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")
	llmViewCmd.Flags().Bool("raw", false, "Print the raw request and response")
	llmUsageCmd.Flags().Bool("json", false, "Print as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmUsageCmd)
}
