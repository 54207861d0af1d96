// Package quizgen turns a content analysis into a persisted quiz.
package quizgen

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/store"
)

var errNoUsableQuestions = errors.New("no usable questions in response")

// ErrMissingUser is returned when no user identity is supplied.
var ErrMissingUser = errors.New("user id is required")

// Service generates quizzes and serves them back to their owners.
type Service struct {
	source QuestionSource
	repo   store.QuizRepo
	config Config
	log    *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires a Service. A nil log discards output.
func NewService(source QuestionSource, repo store.QuizRepo, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	return &Service{
		source: source,
		repo:   repo,
		config: cfg,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Generate asks the source for questions about a, keeps the ones that pass
// validation and persists the quiz with its questions in one transaction.
// On error nothing is persisted.
func (s *Service) Generate(ctx context.Context, userID string, historyID *string, a analysis.Result) (*quiz.Quiz, []quiz.Question, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil, ErrMissingUser
	}
	a = a.Normalize()
	questions, err := s.Draft(ctx, a)
	if err != nil {
		s.log.Warn("quiz generation failed", "user_id", userID, "error", err)
		return nil, nil, err
	}

	q := &quiz.Quiz{
		ID:          s.newID(),
		UserID:      userID,
		HistoryID:   historyID,
		Title:       Title(a.Summary),
		ContentType: a.Type,
		CreatedAt:   s.now(),
	}
	for i := range questions {
		questions[i].ID = s.newID()
		questions[i].QuizID = q.ID
		questions[i].Position = i
	}

	if err := s.repo.CreateQuiz(ctx, q, questions); err != nil {
		return nil, nil, &quiz.ErrPersistence{Op: "create quiz", Err: err}
	}

	s.log.Info("quiz generated",
		"user_id", userID,
		"quiz_id", q.ID,
		"content_type", string(q.ContentType),
		"questions", len(questions),
	)
	return q, questions, nil
}

// Draft generates and validates questions for a without storing anything.
// Returned questions have no IDs yet.
func (s *Service) Draft(ctx context.Context, a analysis.Result) ([]quiz.Question, error) {
	a = a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	cands, err := s.source.GenerateQuestions(ctx, a, s.config.QuestionCount)
	if err != nil {
		return nil, &quiz.ErrGenerationFailed{Err: err}
	}

	questions := s.accept(cands)
	if len(questions) == 0 {
		return nil, &quiz.ErrGenerationFailed{Err: errNoUsableQuestions}
	}
	s.log.Debug("candidates accepted", "accepted", len(questions), "rejected", len(cands)-len(questions))
	return questions, nil
}

// accept validates candidates, converting the survivors to questions and
// dropping repeats of an already accepted question. Option order is
// preserved. At most QuestionCount are kept.
func (s *Service) accept(cands []Candidate) []quiz.Question {
	var out []quiz.Question
	seen := questionSet{}
	for _, c := range cands {
		if len(out) == s.config.QuestionCount {
			break
		}
		if verr := runValidators(&c, s.config.Validators); verr != nil {
			s.log.Debug("candidate rejected", "validator", verr.Validator, "reason", verr.Message)
			continue
		}
		q := c.Question()
		if err := q.Validate(); err != nil {
			s.log.Debug("candidate rejected", "reason", err.Error())
			continue
		}
		if !seen.add(q.Text) {
			s.log.Debug("candidate rejected", "reason", "duplicate question")
			continue
		}
		out = append(out, q)
	}
	return out
}

// Get returns a quiz and its questions. Quizzes owned by another user are
// reported as not found.
func (s *Service) Get(ctx context.Context, userID, quizID string) (*quiz.Quiz, []quiz.Question, error) {
	q, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, &quiz.ErrPersistence{Op: "get quiz", Err: err}
	}
	if q == nil || q.UserID != userID {
		return nil, nil, &quiz.ErrNotFound{Kind: "quiz", ID: quizID}
	}
	questions, err := s.repo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, nil, &quiz.ErrPersistence{Op: "list questions", Err: err}
	}
	return q, questions, nil
}

// List returns the user's quizzes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]quiz.Quiz, error) {
	quizzes, err := s.repo.ListQuizzes(ctx, userID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "list quizzes", Err: err}
	}
	return quizzes, nil
}
