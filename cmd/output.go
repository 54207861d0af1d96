package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/snapquiz/internal/quiz"
)

const rule = "----------------------------------------------------------------------"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printQuestions lists questions with lettered options. When reveal is set
// the correct option is marked and the explanation shown.
func printQuestions(w io.Writer, questions []quiz.Question, reveal bool) {
	for i, q := range questions {
		fmt.Fprintf(w, "\n%d. %s", i+1, q.Text)
		if q.Difficulty != "" {
			fmt.Fprintf(w, "  [%s]", q.Difficulty)
		}
		if q.ID != "" {
			fmt.Fprintf(w, "\n   id: %s", q.ID)
		}
		fmt.Fprintln(w)
		for j, opt := range q.Options {
			mark := " "
			if reveal && j == q.CorrectOption {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %c) %s\n", mark, 'A'+j, opt)
		}
		if reveal && q.Explanation != "" {
			fmt.Fprintf(w, "     %s\n", q.Explanation)
		}
	}
}

// parseAnswers reads a comma-separated list of selections such as
// "0,2,-1" or "a,c,-". Letters a-d and digits 0-3 select an option;
// "-" or "-1" leaves the question unanswered.
func parseAnswers(s string, questions []quiz.Question) ([]quiz.Answer, error) {
	parts := strings.Split(s, ",")
	if len(parts) > len(questions) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(parts), len(questions))
	}
	answers := make([]quiz.Answer, 0, len(parts))
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		sel := quiz.Unanswered
		switch {
		case p == "" || p == "-" || p == "-1":
		case len(p) == 1 && p[0] >= 'a' && p[0] <= 'd':
			sel = int(p[0] - 'a')
		case len(p) == 1 && p[0] >= '0' && p[0] <= '3':
			sel = int(p[0] - '0')
		default:
			return nil, fmt.Errorf("answer %d: invalid selection %q", i+1, p)
		}
		answers = append(answers, quiz.Answer{QuestionID: questions[i].ID, Selected: sel})
	}
	return answers, nil
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
