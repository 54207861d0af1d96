// Package server exposes quiz generation, grading and performance over
// HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/quiz"
)

var errBadLimit = errors.New("limit must be a non-negative integer")

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// QuizService generates and reads quizzes.
type QuizService interface {
	Generate(ctx context.Context, userID string, historyID *string, a analysis.Result) (*quiz.Quiz, []quiz.Question, error)
	Get(ctx context.Context, userID, quizID string) (*quiz.Quiz, []quiz.Question, error)
	List(ctx context.Context, userID string, limit int) ([]quiz.Quiz, error)
}

// GradingService grades submissions.
type GradingService interface {
	Submit(ctx context.Context, quizID, userID string, answers []quiz.Answer, timeTakenSeconds int) (*quiz.Attempt, error)
}

// PerformanceService answers history and dashboard queries.
type PerformanceService interface {
	GetPerformance(ctx context.Context, userID string) (*performance.Performance, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]quiz.AttemptSummary, error)
	GetAttempt(ctx context.Context, userID, attemptID string) (*quiz.Attempt, error)
}

// Config holds listener settings.
type Config struct {
	Addr        string
	CORSOrigins []string
}

// ConfigFromEnv reads SNAPQUIZ_HTTP_ADDR and SNAPQUIZ_CORS_ORIGINS
// (comma separated).
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:        strings.TrimSpace(os.Getenv("SNAPQUIZ_HTTP_ADDR")),
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if raw := os.Getenv("SNAPQUIZ_CORS_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}
	return cfg
}

// Server owns the router and its dependencies.
type Server struct {
	cfg         Config
	log         *logger.Logger
	quizzes     QuizService
	grader      GradingService
	performance PerformanceService
}

// New creates a Server. log may be nil.
func New(cfg Config, quizzes QuizService, grader GradingService, perf PerformanceService, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{
		cfg:         cfg,
		log:         log.With("component", "http"),
		quizzes:     quizzes,
		grader:      grader,
		performance: perf,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(CORS(s.cfg.CORSOrigins))
	}

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.Use(RequireUser())
	{
		api.POST("/quizzes", s.createQuiz)
		api.GET("/quizzes", s.listQuizzes)
		api.GET("/quizzes/:id", s.getQuiz)
		api.POST("/quizzes/:id/attempts", s.submitAttempt)

		api.GET("/attempts", s.listAttempts)
		api.GET("/attempts/:id", s.getAttempt)

		api.GET("/performance", s.getPerformance)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
