package grader

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/store"
)

// Invalidator is notified after an attempt is stored so derived views,
// such as cached performance stats, can be refreshed.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Service grades submissions and persists them.
type Service struct {
	quizzes     store.QuizRepo
	attempts    store.AttemptRepo
	invalidator Invalidator
	log         *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires a Service. inv and log may be nil.
func NewService(quizzes store.QuizRepo, attempts store.AttemptRepo, inv Invalidator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		quizzes:     quizzes,
		attempts:    attempts,
		invalidator: inv,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Submit grades answers for the user's quiz and stores the attempt with
// every answer record in one transaction. Each call creates a new attempt.
// Negative durations are clamped to zero.
func (s *Service) Submit(ctx context.Context, quizID, userID string, answers []quiz.Answer, timeTakenSeconds int) (*quiz.Attempt, error) {
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "get quiz", Err: err}
	}
	if q == nil || q.UserID != userID {
		return nil, &quiz.ErrNotFound{Kind: "quiz", ID: quizID}
	}
	questions, err := s.quizzes.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "list questions", Err: err}
	}

	res, err := Grade(quizID, questions, answers)
	if err != nil {
		return nil, err
	}

	a := &quiz.Attempt{
		ID:               s.newID(),
		QuizID:           quizID,
		UserID:           userID,
		Score:            res.Score,
		TotalQuestions:   res.Total,
		Percentage:       res.Percentage,
		TimeTakenSeconds: max(timeTakenSeconds, 0),
		CreatedAt:        s.now(),
		Answers:          res.Answers,
	}
	if err := s.attempts.CreateAttempt(ctx, a); err != nil {
		s.log.Error("store attempt failed", "user_id", userID, "quiz_id", quizID, "error", err)
		return nil, &quiz.ErrPersistence{Op: "create attempt", Err: err}
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, userID); err != nil {
			s.log.Warn("invalidate performance cache", "user_id", userID, "error", err)
		}
	}

	s.log.Info("attempt graded",
		"user_id", userID,
		"quiz_id", quizID,
		"attempt_id", a.ID,
		"score", a.Score,
		"total", a.TotalQuestions,
		"percentage", a.Percentage,
	)
	return a, nil
}
