package grader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedQuiz(t *testing.T, s *store.Store, userID string) (*quiz.Quiz, []quiz.Question) {
	t.Helper()
	q := &quiz.Quiz{ID: "quiz-1", UserID: userID, Title: "Algebra", ContentType: analysis.ContentMath}
	qs := []quiz.Question{
		{ID: "q1", Position: 0, Text: "One", Options: [4]string{"a", "b", "c", "d"}, CorrectOption: 0, Explanation: "e", Difficulty: quiz.DifficultyEasy},
		{ID: "q2", Position: 1, Text: "Two", Options: [4]string{"a", "b", "c", "d"}, CorrectOption: 2, Explanation: "e", Difficulty: quiz.DifficultyEasy},
		{ID: "q3", Position: 2, Text: "Three", Options: [4]string{"a", "b", "c", "d"}, CorrectOption: 1, Explanation: "e", Difficulty: quiz.DifficultyEasy},
	}
	require.NoError(t, s.QuizRepo().CreateQuiz(context.Background(), q, qs))
	return q, qs
}

type countingInvalidator struct {
	users []string
	err   error
}

func (c *countingInvalidator) Invalidate(_ context.Context, userID string) error {
	c.users = append(c.users, userID)
	return c.err
}

func TestSubmit_StoresAttempt(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	inv := &countingInvalidator{}
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), inv, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a, err := svc.Submit(context.Background(), "quiz-1", "u1", []quiz.Answer{
		{QuestionID: "q1", Selected: 0},
		{QuestionID: "q2", Selected: 2},
		{QuestionID: "q3", Selected: 3},
	}, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, 3, a.TotalQuestions)
	assert.Equal(t, 67, a.Percentage)
	assert.Equal(t, 42, a.TimeTakenSeconds)
	assert.Equal(t, []string{"u1"}, inv.users)

	stored, err := s.AttemptRepo().GetAttempt(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 67, stored.Percentage)
	assert.True(t, stored.CreatedAt.Equal(fixed))
	require.Len(t, stored.Answers, 3)
	assert.Equal(t, 3, stored.Answers[2].Selected)
	assert.Equal(t, 1, stored.Answers[2].Correct)
	assert.False(t, stored.Answers[2].IsCorrect)
	assert.Equal(t, "Three", stored.Answers[2].Question)
}

func TestSubmit_NoDedup(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), nil, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), "quiz-1", "u1", nil, 10)
		require.NoError(t, err)
	}
	list, err := s.AttemptRepo().ListAttempts(context.Background(), "u1", store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSubmit_ClampsNegativeTime(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), nil, nil)

	a, err := svc.Submit(context.Background(), "quiz-1", "u1", nil, -5)
	require.NoError(t, err)
	assert.Zero(t, a.TimeTakenSeconds)
}

func TestSubmit_UnknownQuestionWritesNothing(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	inv := &countingInvalidator{}
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), inv, nil)

	_, err := svc.Submit(context.Background(), "quiz-1", "u1", []quiz.Answer{{QuestionID: "other", Selected: 0}}, 5)
	var refErr *quiz.ErrInvalidAnswerReference
	require.ErrorAs(t, err, &refErr)

	list, err := s.AttemptRepo().ListAttempts(context.Background(), "u1", store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, inv.users)
}

func TestSubmit_NotFound(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "owner")
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), nil, nil)

	var nf *quiz.ErrNotFound
	_, err := svc.Submit(context.Background(), "missing", "owner", nil, 1)
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Submit(context.Background(), "quiz-1", "someone-else", nil, 1)
	assert.ErrorAs(t, err, &nf)
}

type failingAttempts struct {
	store.AttemptRepo
}

func (failingAttempts) CreateAttempt(context.Context, *quiz.Attempt) error {
	return errors.New("database is locked")
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	inv := &countingInvalidator{}
	svc := NewService(s.QuizRepo(), failingAttempts{}, inv, nil)

	_, err := svc.Submit(context.Background(), "quiz-1", "u1", nil, 1)
	var perr *quiz.ErrPersistence
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create attempt", perr.Op)
	assert.Empty(t, inv.users)
}

func TestSubmit_InvalidatorErrorIgnored(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), &countingInvalidator{err: errors.New("redis down")}, nil)

	_, err := svc.Submit(context.Background(), "quiz-1", "u1", nil, 1)
	assert.NoError(t, err)
}

func TestSubmit_AnswerSnapshotSurvivesQuestionEdits(t *testing.T) {
	s := openTestStore(t)
	seedQuiz(t, s, "u1")
	svc := NewService(s.QuizRepo(), s.AttemptRepo(), nil, nil)
	ctx := context.Background()

	a, err := svc.Submit(ctx, "quiz-1", "u1", []quiz.Answer{{QuestionID: "q3", Selected: 1}}, 5)
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx,
		"UPDATE questions SET text = ?, options = ?, explanation = ? WHERE id = ?",
		"Rewritten", `["w","x","y","z"]`, "changed", "q3")
	require.NoError(t, err)

	stored, err := s.AttemptRepo().GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Answers, 3)
	rec := stored.Answers[2]
	assert.Equal(t, "q3", rec.QuestionID)
	assert.Equal(t, "Three", rec.Question)
	assert.Equal(t, [4]string{"a", "b", "c", "d"}, rec.Options)
	assert.Equal(t, "e", rec.Explanation)
	assert.True(t, rec.IsCorrect)
}
