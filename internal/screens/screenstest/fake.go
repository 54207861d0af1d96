// Package screenstest provides in-memory services for screen tests.
package screenstest

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/grader"
	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/screens"
)

// Quiz returns a three-question math quiz whose correct answers are 0, 2
// and 1.
func Quiz() (*quiz.Quiz, []quiz.Question) {
	q := &quiz.Quiz{
		ID:             "quiz-1",
		UserID:         "u1",
		Title:          "Fractions",
		ContentType:    analysis.ContentMath,
		TotalQuestions: 3,
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	correct := []int{0, 2, 1}
	questions := make([]quiz.Question, len(correct))
	for i, c := range correct {
		questions[i] = quiz.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			QuizID:        q.ID,
			Position:      i,
			Text:          fmt.Sprintf("Question %d?", i+1),
			Options:       [quiz.NumOptions]string{"w", "x", "y", "z"},
			CorrectOption: c,
			Explanation:   fmt.Sprintf("Because %d.", i+1),
			Difficulty:    quiz.DifficultyEasy,
		}
	}
	return q, questions
}

// Services implements every screens service interface in memory.
type Services struct {
	Quiz      *quiz.Quiz
	Questions []quiz.Question
	Attempts  []quiz.AttemptSummary
	Perf      *performance.Performance

	GenerateErr error
	SubmitErr   error
	ReadErr     error

	GenerateCalls int
	Submitted     [][]quiz.Answer
}

// New returns Services seeded with Quiz.
func New() *Services {
	q, questions := Quiz()
	return &Services{Quiz: q, Questions: questions}
}

// Deps wires s into a screens.Deps for user u1 with a fixed clock.
func (s *Services) Deps() screens.Deps {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return screens.Deps{
		Quizzes:     s,
		Grader:      s,
		Performance: s,
		UserID:      "u1",
		Clock:       func() time.Time { return now },
	}
}

func (s *Services) Generate(_ context.Context, _ string, _ *string, _ analysis.Result) (*quiz.Quiz, []quiz.Question, error) {
	s.GenerateCalls++
	if s.GenerateErr != nil {
		return nil, nil, s.GenerateErr
	}
	return s.Quiz, s.Questions, nil
}

func (s *Services) Get(_ context.Context, _, quizID string) (*quiz.Quiz, []quiz.Question, error) {
	if s.ReadErr != nil {
		return nil, nil, s.ReadErr
	}
	if s.Quiz == nil || s.Quiz.ID != quizID {
		return nil, nil, &quiz.ErrNotFound{Kind: "quiz", ID: quizID}
	}
	return s.Quiz, s.Questions, nil
}

func (s *Services) List(_ context.Context, _ string, _ int) ([]quiz.Quiz, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if s.Quiz == nil {
		return []quiz.Quiz{}, nil
	}
	return []quiz.Quiz{*s.Quiz}, nil
}

func (s *Services) Submit(_ context.Context, quizID, userID string, answers []quiz.Answer, timeTakenSeconds int) (*quiz.Attempt, error) {
	s.Submitted = append(s.Submitted, answers)
	if s.SubmitErr != nil {
		return nil, s.SubmitErr
	}
	res, err := grader.Grade(quizID, s.Questions, answers)
	if err != nil {
		return nil, err
	}
	a := &quiz.Attempt{
		ID:               fmt.Sprintf("attempt-%d", len(s.Submitted)),
		QuizID:           quizID,
		UserID:           userID,
		Score:            res.Score,
		TotalQuestions:   res.Total,
		Percentage:       res.Percentage,
		TimeTakenSeconds: timeTakenSeconds,
		CreatedAt:        time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC),
		Answers:          res.Answers,
	}
	s.Attempts = append([]quiz.AttemptSummary{{Attempt: *a, QuizTitle: s.Quiz.Title, ContentType: s.Quiz.ContentType}}, s.Attempts...)
	return a, nil
}

func (s *Services) GetPerformance(_ context.Context, _ string) (*performance.Performance, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if s.Perf != nil {
		return s.Perf, nil
	}
	return performance.Compute(s.Attempts, performance.DefaultTrendWindow), nil
}

func (s *Services) GetHistory(_ context.Context, _ string, _ int) ([]quiz.AttemptSummary, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.Attempts, nil
}

func (s *Services) GetAttempt(_ context.Context, _, attemptID string) (*quiz.Attempt, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	for _, a := range s.Attempts {
		if a.ID == attemptID {
			att := a.Attempt
			return &att, nil
		}
	}
	return nil, &quiz.ErrNotFound{Kind: "attempt", ID: attemptID}
}
