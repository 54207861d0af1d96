// Package screens holds the dependencies shared by the TUI screens.
package screens

import (
	"context"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/session"
)

// QuizService generates and loads quizzes.
type QuizService interface {
	Generate(ctx context.Context, userID string, historyID *string, a analysis.Result) (*quiz.Quiz, []quiz.Question, error)
	Get(ctx context.Context, userID, quizID string) (*quiz.Quiz, []quiz.Question, error)
	List(ctx context.Context, userID string, limit int) ([]quiz.Quiz, error)
}

// GradingService grades and records a submission.
type GradingService interface {
	Submit(ctx context.Context, quizID, userID string, answers []quiz.Answer, timeTakenSeconds int) (*quiz.Attempt, error)
}

// PerformanceService reads attempt history and aggregates.
type PerformanceService interface {
	GetPerformance(ctx context.Context, userID string) (*performance.Performance, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]quiz.AttemptSummary, error)
	GetAttempt(ctx context.Context, userID, attemptID string) (*quiz.Attempt, error)
}

// Deps is passed to every screen.
type Deps struct {
	Quizzes     QuizService
	Grader      GradingService
	Performance PerformanceService
	UserID      string
	Clock       session.Clock
}

// ListLimit caps the rows loaded by list screens.
const ListLimit = 50
