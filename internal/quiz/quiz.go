// Package quiz holds the quiz data model shared by generation, grading and
// aggregation.
package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/snapquiz/internal/analysis"
)

// NumOptions is the fixed number of options on every question.
const NumOptions = 4

// Unanswered marks a question the user did not answer.
const Unanswered = -1

// Difficulty is the generator's self-assessed difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Quiz is a generated set of questions bound to one user.
type Quiz struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	HistoryID      *string              `json:"history_id,omitempty"`
	Title          string               `json:"title"`
	ContentType    analysis.ContentType `json:"content_type"`
	TotalQuestions int                  `json:"total_questions"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Question is a single multiple-choice question. Options keep the order
// they were generated in.
type Question struct {
	ID            string             `json:"id"`
	QuizID        string             `json:"quiz_id"`
	Position      int                `json:"position"`
	Text          string             `json:"question"`
	Options       [NumOptions]string `json:"options"`
	CorrectOption int                `json:"correct_option"`
	Explanation   string             `json:"explanation"`
	Difficulty    Difficulty         `json:"difficulty"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectOption < 0 || q.CorrectOption >= NumOptions {
		return fmt.Errorf("correct option %d out of range 0-%d", q.CorrectOption, NumOptions-1)
	}
	return nil
}

// ValidSelection reports whether selected is a legal answer value.
func ValidSelection(selected int) bool {
	return selected == Unanswered || (selected >= 0 && selected < NumOptions)
}

// Answer is a user's selection for one question in a submission.
type Answer struct {
	QuestionID string `json:"question_id"`
	Selected   int    `json:"selected"`
}

// Attempt is one graded submission of a quiz.
type Attempt struct {
	ID               string         `json:"id"`
	QuizID           string         `json:"quiz_id"`
	UserID           string         `json:"user_id"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"total_questions"`
	Percentage       int            `json:"percentage"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	CreatedAt        time.Time      `json:"created_at"`
	Answers          []AnswerRecord `json:"answers,omitempty"`
}

// AnswerRecord is the per-question outcome of an attempt. The question
// fields are copied at grading time so the record stays readable even if
// the question changes later.
type AnswerRecord struct {
	QuestionID  string             `json:"question_id"`
	Position    int                `json:"position"`
	Selected    int                `json:"selected_option"`
	Correct     int                `json:"correct_option"`
	IsCorrect   bool               `json:"is_correct"`
	Question    string             `json:"question"`
	Options     [NumOptions]string `json:"options"`
	Explanation string             `json:"explanation"`
}

// Answered reports whether the user picked an option.
func (r AnswerRecord) Answered() bool { return r.Selected != Unanswered }

// AttemptSummary is an attempt joined with the quiz fields needed for
// history listings and aggregation.
type AttemptSummary struct {
	Attempt
	QuizTitle   string               `json:"quiz_title"`
	ContentType analysis.ContentType `json:"content_type"`
}

// Percentage returns 100*score/total rounded half up. Zero total yields 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
