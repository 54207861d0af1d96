package store

import (
	"context"
	"database/sql"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/snapquiz/internal/quiz"
)

const sqliteDialect = dialect.SQLite

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	Before int64 // sequence < Before (0 = no bound)
}

// QuizRepo persists generated quizzes and their questions.
type QuizRepo interface {
	// CreateQuiz stores the quiz and its questions in one transaction.
	CreateQuiz(ctx context.Context, q *quiz.Quiz, questions []quiz.Question) error

	// GetQuiz returns the quiz with the given ID, or nil if none exists.
	GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error)

	// ListQuestions returns the quiz's questions in position order.
	ListQuestions(ctx context.Context, quizID string) ([]quiz.Question, error)

	// ListQuizzes returns a user's quizzes, newest first.
	ListQuizzes(ctx context.Context, userID string, opts QueryOpts) ([]quiz.Quiz, error)
}

// AttemptRepo persists graded attempts.
type AttemptRepo interface {
	// CreateAttempt stores the attempt and all of its answer records in
	// one transaction and assigns its sequence.
	CreateAttempt(ctx context.Context, a *quiz.Attempt) error

	// GetAttempt returns the attempt with its answers, or nil if none exists.
	GetAttempt(ctx context.Context, id string) (*quiz.Attempt, error)

	// ListAttempts returns a user's attempts joined with quiz metadata,
	// newest first. Answer records are not loaded.
	ListAttempts(ctx context.Context, userID string, opts QueryOpts) ([]quiz.AttemptSummary, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one model.
type LLMUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// execBuilder runs an ent-built statement.
func execBuilder(ctx context.Context, q querier, b entsql.Querier) error {
	query, args := b.Query()
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

// queryBuilder runs an ent-built select.
func queryBuilder(ctx context.Context, q querier, b entsql.Querier) (*sql.Rows, error) {
	query, args := b.Query()
	return q.QueryContext(ctx, query, args...)
}
