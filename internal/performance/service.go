package performance

import (
	"context"
	"os"
	"strconv"

	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/store"
)

// Cache stores computed performance per user. Entries may be stale until
// they expire or are invalidated.
type Cache interface {
	// Get returns the cached value, or nil if there is none.
	Get(ctx context.Context, userID string) (*Performance, error)
	Set(ctx context.Context, userID string, p *Performance) error
	Delete(ctx context.Context, userID string) error
}

// Config controls aggregation.
type Config struct {
	TrendWindow int
}

// ConfigFromEnv reads SNAPQUIZ_TREND_WINDOW. Invalid values are ignored.
func ConfigFromEnv() Config {
	cfg := Config{TrendWindow: DefaultTrendWindow}
	if n, err := strconv.Atoi(os.Getenv("SNAPQUIZ_TREND_WINDOW")); err == nil && n >= 2 && n <= 50 {
		cfg.TrendWindow = n
	}
	return cfg
}

// Service answers dashboard and history queries.
type Service struct {
	attempts store.AttemptRepo
	cache    Cache
	config   Config
	log      *logger.Logger
}

// NewService wires a Service. cache and log may be nil.
func NewService(attempts store.AttemptRepo, cache Cache, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TrendWindow <= 0 {
		cfg.TrendWindow = DefaultTrendWindow
	}
	return &Service{attempts: attempts, cache: cache, config: cfg, log: log}
}

// GetPerformance returns the user's aggregate stats. Cache failures are
// logged and bypassed.
func (s *Service) GetPerformance(ctx context.Context, userID string) (*Performance, error) {
	if s.cache != nil {
		p, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn("performance cache read failed", "user_id", userID, "error", err)
		} else if p != nil {
			return p, nil
		}
	}

	attempts, err := s.attempts.ListAttempts(ctx, userID, store.QueryOpts{})
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "list attempts", Err: err}
	}
	p := Compute(attempts, s.config.TrendWindow)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, p); err != nil {
			s.log.Warn("performance cache write failed", "user_id", userID, "error", err)
		}
	}
	return p, nil
}

// GetHistory returns the user's attempts newest first. A non-positive
// limit returns all of them.
func (s *Service) GetHistory(ctx context.Context, userID string, limit int) ([]quiz.AttemptSummary, error) {
	attempts, err := s.attempts.ListAttempts(ctx, userID, store.QueryOpts{Limit: max(limit, 0)})
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "list attempts", Err: err}
	}
	return attempts, nil
}

// GetAttempt returns one attempt with its answer records. Attempts owned
// by another user are reported as not found.
func (s *Service) GetAttempt(ctx context.Context, userID, attemptID string) (*quiz.Attempt, error) {
	a, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, &quiz.ErrPersistence{Op: "get attempt", Err: err}
	}
	if a == nil || a.UserID != userID {
		return nil, &quiz.ErrNotFound{Kind: "attempt", ID: attemptID}
	}
	return a, nil
}

// Invalidate drops the user's cached performance.
func (s *Service) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, userID)
}
