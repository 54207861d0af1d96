package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/snapquiz/internal/analysis"
)

const systemPrompt = `You are a study assistant writing a short multiple-choice quiz about content a student just scanned.

Rules:
- Write exactly the requested number of questions, each testing understanding of the content rather than trivia about its wording.
- Every question has exactly 4 options and exactly one correct option. Give its zero-based index in correct_option.
- Distractors should be plausible and reflect common misunderstandings. Never use "all of the above" or "none of the above".
- Options must be distinct from each other.
- Vary the position of the correct option across questions.
- Keep the explanation to one or two sentences.
- For math and aptitude content, include questions about the method as well as the final result.
- Use plain text. No markdown, no LaTeX.
- Do not repeat a question.`

// buildUserMessage constructs the user message from the analysis and
// Config limits.
func buildUserMessage(a analysis.Result, count int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Content type: %s\n", a.Type)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "\nSummary:\n%s\n", a.Summary)

	if len(a.KeyWords) > 0 {
		fmt.Fprintf(&b, "\nKey words: %s\n", strings.Join(a.KeyWords, ", "))
	}

	if a.UsesSolutionPath() {
		if len(a.SolutionSteps) > 0 {
			b.WriteString("\nSolution steps:\n")
			b.WriteString(buildSteps(a.SolutionSteps))
			b.WriteString("\n")
		}
		if a.FinalAnswer != "" {
			fmt.Fprintf(&b, "\nFinal answer: %s\n", a.FinalAnswer)
		}
	} else if len(a.RealWorldExamples) > 0 {
		b.WriteString("\nReal-world examples:\n")
		b.WriteString(buildList(a.RealWorldExamples))
		b.WriteString("\n")
	}

	b.WriteString("\nExtracted text:\n")
	b.WriteString(truncate(a.ExtractedText, cfg.MaxSourceChars))

	return b.String()
}

func buildSteps(steps []analysis.Step) string {
	var b strings.Builder
	for i, s := range steps {
		if s.Title != "" {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, s.Title, s.Content)
		} else {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s.Content)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate cuts s to at most max runes. A non-positive max disables it.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + " ..."
}
