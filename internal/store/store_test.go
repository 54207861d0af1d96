package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedQuiz(t *testing.T, s *Store, id, userID string, createdAt time.Time) (*quiz.Quiz, []quiz.Question) {
	t.Helper()
	q := &quiz.Quiz{
		ID:          id,
		UserID:      userID,
		Title:       "Photosynthesis",
		ContentType: analysis.ContentText,
		CreatedAt:   createdAt,
	}
	questions := []quiz.Question{
		{ID: id + "-q1", Position: 0, Text: "Q1", Options: [4]string{"a", "b", "c", "d"}, CorrectOption: 0, Explanation: "e1", Difficulty: quiz.DifficultyEasy},
		{ID: id + "-q2", Position: 1, Text: "Q2", Options: [4]string{"e", "f", "g", "h"}, CorrectOption: 2, Explanation: "e2", Difficulty: quiz.DifficultyHard},
	}
	require.NoError(t, s.QuizRepo().CreateQuiz(context.Background(), q, questions))
	return q, questions
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"quizzes", "questions", "attempts", "answer_records", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestWithConnPragmas(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withConnPragmas("a.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withConnPragmas("file:x?mode=memory"))
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.DB())
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		assert.Equal(t, int64(i+1), seq)
	}
}

func TestCreateAndGetQuiz(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizRepo()

	hist := "hist-1"
	q := &quiz.Quiz{ID: "quiz-1", UserID: "u1", HistoryID: &hist, Title: "Fractions", ContentType: analysis.ContentMath}
	questions := []quiz.Question{
		{ID: "q-b", Position: 0, Text: "First", Options: [4]string{"w", "x", "y", "z"}, CorrectOption: 3, Explanation: "because", Difficulty: quiz.DifficultyMedium},
		{ID: "q-a", Position: 1, Text: "Second", Options: [4]string{"1", "2", "3", "4"}, CorrectOption: 0, Explanation: "since", Difficulty: quiz.DifficultyEasy},
	}
	require.NoError(t, repo.CreateQuiz(ctx, q, questions))

	got, err := repo.GetQuiz(ctx, "quiz-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	require.NotNil(t, got.HistoryID)
	assert.Equal(t, "hist-1", *got.HistoryID)
	assert.Equal(t, analysis.ContentMath, got.ContentType)
	assert.Equal(t, 2, got.TotalQuestions)

	qs, err := repo.ListQuestions(ctx, "quiz-1")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "First", qs[0].Text, "questions keep generation order")
	assert.Equal(t, [4]string{"w", "x", "y", "z"}, qs[0].Options, "options keep generation order")
	assert.Equal(t, 3, qs[0].CorrectOption)
	assert.Equal(t, quiz.DifficultyMedium, qs[0].Difficulty)

	missing, err := repo.GetQuiz(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateQuizIsAtomic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizRepo()

	q := &quiz.Quiz{ID: "quiz-dup", UserID: "u1", Title: "T", ContentType: analysis.ContentText}
	// Two questions at the same position violate the unique index.
	questions := []quiz.Question{
		{ID: "d1", Position: 0, Text: "a", Options: [4]string{"1", "2", "3", "4"}, Difficulty: quiz.DifficultyEasy},
		{ID: "d2", Position: 0, Text: "b", Options: [4]string{"1", "2", "3", "4"}, Difficulty: quiz.DifficultyEasy},
	}
	require.Error(t, repo.CreateQuiz(ctx, q, questions))

	got, err := repo.GetQuiz(ctx, "quiz-dup")
	require.NoError(t, err)
	assert.Nil(t, got, "failed create must not leave a quiz behind")
}

func TestListQuizzesNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedQuiz(t, s, "old", "u1", base)
	seedQuiz(t, s, "new", "u1", base.Add(time.Hour))
	seedQuiz(t, s, "other", "u2", base.Add(2*time.Hour))

	got, err := s.QuizRepo().ListQuizzes(context.Background(), "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestCreateAndGetAttempt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, qs := seedQuiz(t, s, "quiz-1", "u1", time.Now())

	a := &quiz.Attempt{
		ID: "att-1", QuizID: "quiz-1", UserID: "u1",
		Score: 1, TotalQuestions: 2, Percentage: 50, TimeTakenSeconds: 42,
		Answers: []quiz.AnswerRecord{
			{QuestionID: qs[0].ID, Position: 0, Selected: 0, Correct: 0, IsCorrect: true, Question: "Q1", Options: qs[0].Options, Explanation: "e1"},
			{QuestionID: qs[1].ID, Position: 1, Selected: quiz.Unanswered, Correct: 2, IsCorrect: false, Question: "Q2", Options: qs[1].Options, Explanation: "e2"},
		},
	}
	require.NoError(t, s.AttemptRepo().CreateAttempt(ctx, a))

	got, err := s.AttemptRepo().GetAttempt(ctx, "att-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 50, got.Percentage)
	assert.Equal(t, 42, got.TimeTakenSeconds)
	require.Len(t, got.Answers, 2)
	assert.True(t, got.Answers[0].IsCorrect)
	assert.Equal(t, quiz.Unanswered, got.Answers[1].Selected)
	assert.Equal(t, qs[1].Options, got.Answers[1].Options)

	missing, err := s.AttemptRepo().GetAttempt(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateAttemptIsAtomic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuiz(t, s, "quiz-1", "u1", time.Now())

	a := &quiz.Attempt{
		ID: "att-bad", QuizID: "quiz-1", UserID: "u1", TotalQuestions: 1,
		Answers: []quiz.AnswerRecord{
			// Unknown question violates the foreign key.
			{QuestionID: "ghost", Selected: 1, Correct: 1, IsCorrect: true, Question: "?"},
		},
	}
	require.Error(t, s.AttemptRepo().CreateAttempt(ctx, a))

	got, err := s.AttemptRepo().GetAttempt(ctx, "att-bad")
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := s.AttemptRepo().ListAttempts(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAttemptsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuiz(t, s, "quiz-1", "u1", time.Now())

	// Identical timestamps: order must still follow insertion.
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		a := &quiz.Attempt{ID: fmt.Sprintf("att-%d", i), QuizID: "quiz-1", UserID: "u1", Score: i, TotalQuestions: 2, CreatedAt: ts}
		require.NoError(t, s.AttemptRepo().CreateAttempt(ctx, a))
	}

	got, err := s.AttemptRepo().ListAttempts(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "att-2", got[0].ID)
	assert.Equal(t, "att-0", got[2].ID)
	assert.Equal(t, "Photosynthesis", got[0].QuizTitle)
	assert.Equal(t, analysis.ContentText, got[0].ContentType)

	limited, err := s.AttemptRepo().ListAttempts(ctx, "u1", QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := s.AttemptRepo().ListAttempts(ctx, "u2", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for _, d := range []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "quiz-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "quiz-gen", InputTokens: 20, OutputTokens: 15, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "other", InputTokens: 1, OutputTokens: 1, LatencyMs: 10, ErrorMessage: "boom"},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "m2", events[0].Model, "newest first")

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "boom", e.ErrorMessage)
	assert.False(t, e.Success)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "m1", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 30, byModel[0].InputTokens)
	assert.Equal(t, int64(200), byModel[0].AvgLatencyMs)
}

func TestAnswerRecordsOutliveQuestionDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, qs := seedQuiz(t, s, "quiz-1", "u1", time.Now())

	a := &quiz.Attempt{
		ID: "att-1", QuizID: "quiz-1", UserID: "u1", Score: 1, TotalQuestions: 2, Percentage: 50,
		Answers: []quiz.AnswerRecord{
			{QuestionID: qs[0].ID, Position: 0, Selected: 0, Correct: 0, IsCorrect: true, Question: "Q1", Options: qs[0].Options},
			{QuestionID: qs[1].ID, Position: 1, Selected: 1, Correct: 2, Question: "Q2", Options: qs[1].Options},
		},
	}
	require.NoError(t, s.AttemptRepo().CreateAttempt(ctx, a))

	// A referenced question cannot be removed on its own.
	_, err := s.DB().ExecContext(ctx, "DELETE FROM questions WHERE id = ?", qs[0].ID)
	require.Error(t, err)

	got, err := s.AttemptRepo().GetAttempt(ctx, "att-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Answers, 2)

	// Removing the quiz takes its attempts and their records with it.
	_, err = s.DB().ExecContext(ctx, "DELETE FROM quizzes WHERE id = ?", "quiz-1")
	require.NoError(t, err)
	got, err = s.AttemptRepo().GetAttempt(ctx, "att-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM answer_records").Scan(&n))
	assert.Zero(t, n)
}
