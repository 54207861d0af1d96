package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapquiz/internal/cache"
	"github.com/abhisek/snapquiz/internal/grader"
	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/logger"
	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/quizgen"
	"github.com/abhisek/snapquiz/internal/store"
)

// services holds everything a command needs, built from flags and env.
type services struct {
	store       *store.Store
	log         *logger.Logger
	cache       *cache.RedisCache
	quizzes     *quizgen.Service
	grader      *grader.Service
	performance *performance.Service
	userID      string
	closers     []func()
}

// Close releases resources in reverse order of acquisition.
func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// envOptions tune openServices for the calling command.
type envOptions struct {
	// logToFile sends logs next to the database instead of stderr so the
	// TUI is not overdrawn.
	logToFile bool
	// withLLM builds a provider for generation. Without it, generation
	// fails with ErrGenerationFailed and reads still work.
	withLLM bool
}

// openServices opens the store and wires the services.
func openServices(cmd *cobra.Command, opts envOptions) (*services, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	log, err := newLogger(dbPath, opts.logToFile)
	if err != nil {
		return nil, err
	}
	s := &services{log: log, userID: resolveUser(cmd)}
	s.closers = append(s.closers, log.Sync)

	st, err := store.Open(dbPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.store = st
	s.closers = append(s.closers, func() { _ = st.Close() })

	var perfCache performance.Cache
	if cfg := cache.ConfigFromEnv(); cfg.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg, log)
		if err != nil {
			log.Warn("performance cache disabled", "error", err)
		} else {
			s.cache = rc
			perfCache = rc
			s.closers = append(s.closers, func() { _ = rc.Close() })
		}
	}

	s.performance = performance.NewService(st.AttemptRepo(), perfCache, performance.ConfigFromEnv(), log)
	s.grader = grader.NewService(st.QuizRepo(), st.AttemptRepo(), s.performance, log)

	var source quizgen.QuestionSource = quizgen.Unavailable(fmt.Errorf("no LLM provider configured"))
	if opts.withLLM {
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
		if err != nil {
			log.Warn("LLM provider not configured", "error", err)
			source = quizgen.Unavailable(fmt.Errorf("LLM provider not configured: %w", err))
		} else {
			source = quizgen.NewLLMSource(provider, quizgen.ConfigFromEnv())
		}
	}
	s.quizzes = quizgen.NewService(source, st.QuizRepo(), quizgen.ConfigFromEnv(), log)
	return s, nil
}

func newLogger(dbPath string, toFile bool) (*logger.Logger, error) {
	if toFile && os.Getenv("SNAPQUIZ_LOG_FILE") == "" {
		return logger.New(os.Getenv("SNAPQUIZ_LOG_MODE"), filepath.Join(filepath.Dir(dbPath), "snapquiz.log"))
	}
	return logger.FromEnv()
}
