package quizgen

import (
	"context"
	"strings"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

// Candidate is a question as proposed by a QuestionSource, before
// validation. Options is a slice because sources are not trusted to
// return exactly four.
type Candidate struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Question converts c to a quiz question with trimmed text. Options past
// the fourth are ignored and order is kept. The result has no IDs and is
// not validated.
func (c Candidate) Question() quiz.Question {
	q := quiz.Question{
		Text:          strings.TrimSpace(c.Text),
		CorrectOption: c.CorrectOption,
		Explanation:   strings.TrimSpace(c.Explanation),
		Difficulty:    quiz.Difficulty(strings.ToLower(strings.TrimSpace(c.Difficulty))),
	}
	for i := 0; i < quiz.NumOptions && i < len(c.Options); i++ {
		q.Options[i] = strings.TrimSpace(c.Options[i])
	}
	return q
}

// QuestionSource proposes multiple-choice questions for analyzed content.
type QuestionSource interface {
	// GenerateQuestions returns up to count candidates in presentation
	// order. Callers validate the result.
	GenerateQuestions(ctx context.Context, a analysis.Result, count int) ([]Candidate, error)
}
