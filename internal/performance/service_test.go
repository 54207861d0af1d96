package performance

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

func seedAttempts(t *testing.T, s *store.Store, userID string, ct analysis.ContentType, pcts ...int) {
	t.Helper()
	ctx := context.Background()
	qid := fmt.Sprintf("%s-%s", userID, ct)
	q := &quiz.Quiz{ID: qid, UserID: userID, Title: "Quiz " + string(ct), ContentType: ct}
	qs := []quiz.Question{{ID: qid + "-q", Text: "Q", Options: [4]string{"a", "b", "c", "d"}, Explanation: "e", Difficulty: quiz.DifficultyEasy}}
	require.NoError(t, s.QuizRepo().CreateQuiz(ctx, q, qs))

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range pcts {
		a := &quiz.Attempt{
			ID:             fmt.Sprintf("%s-%d", qid, i),
			QuizID:         qid,
			UserID:         userID,
			Score:          p / 100,
			TotalQuestions: 1,
			Percentage:     p,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.AttemptRepo().CreateAttempt(ctx, a))
	}
}

type memCache struct {
	entries map[string]*Performance
	getErr  error
	gets    int
	deletes int
}

func newMemCache() *memCache { return &memCache{entries: map[string]*Performance{}} }

func (c *memCache) Get(_ context.Context, userID string) (*Performance, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[userID], nil
}

func (c *memCache) Set(_ context.Context, userID string, p *Performance) error {
	c.entries[userID] = p
	return nil
}

func (c *memCache) Delete(_ context.Context, userID string) error {
	c.deletes++
	delete(c.entries, userID)
	return nil
}

func TestGetPerformance(t *testing.T) {
	s := openTestStore(t)
	seedAttempts(t, s, "u1", analysis.ContentMath, 0, 100)
	seedAttempts(t, s, "u2", analysis.ContentText, 50)

	svc := NewService(s.AttemptRepo(), nil, Config{}, nil)
	p, err := svc.GetPerformance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Overall.TotalAttempts)
	assert.Equal(t, 50.0, p.Overall.AvgScore)
	assert.Equal(t, 100, p.Overall.BestScore)
	require.Len(t, p.ByContentType, 1)
	assert.Equal(t, analysis.ContentMath, p.ByContentType[0].ContentType)
	require.Len(t, p.RecentTrend.Points, 2)
	assert.Equal(t, 0, p.RecentTrend.Points[0].Percentage)
	assert.Equal(t, 100, p.RecentTrend.Points[1].Percentage)
}

func TestGetPerformance_NoAttempts(t *testing.T) {
	s := openTestStore(t)
	svc := NewService(s.AttemptRepo(), nil, Config{}, nil)
	p, err := svc.GetPerformance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, p.Overall.HasData)
}

func TestGetPerformance_UsesCache(t *testing.T) {
	s := openTestStore(t)
	seedAttempts(t, s, "u1", analysis.ContentText, 80)
	cache := newMemCache()
	svc := NewService(s.AttemptRepo(), cache, Config{}, nil)

	first, err := svc.GetPerformance(context.Background(), "u1")
	require.NoError(t, err)
	require.Contains(t, cache.entries, "u1")

	// A new attempt is not visible until the entry is invalidated.
	seedAttempts(t, s, "u1", analysis.ContentMath, 20)
	cached, err := svc.GetPerformance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Same(t, first, cached)

	require.NoError(t, svc.Invalidate(context.Background(), "u1"))
	fresh, err := svc.GetPerformance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Overall.TotalAttempts)
}

func TestGetPerformance_CacheErrorBypassed(t *testing.T) {
	s := openTestStore(t)
	seedAttempts(t, s, "u1", analysis.ContentText, 80)
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	svc := NewService(s.AttemptRepo(), cache, Config{}, nil)

	p, err := svc.GetPerformance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Overall.TotalAttempts)
}

func TestGetHistory_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	seedAttempts(t, s, "u1", analysis.ContentText, 10, 20, 30)
	svc := NewService(s.AttemptRepo(), nil, Config{}, nil)

	hist, err := svc.GetHistory(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, 30, hist[0].Percentage)
	assert.Equal(t, 10, hist[2].Percentage)
	assert.Equal(t, "Quiz text", hist[0].QuizTitle)

	limited, err := svc.GetHistory(context.Background(), "u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetAttempt_ScopedToOwner(t *testing.T) {
	s := openTestStore(t)
	seedAttempts(t, s, "u1", analysis.ContentText, 100)
	svc := NewService(s.AttemptRepo(), nil, Config{}, nil)

	a, err := svc.GetAttempt(context.Background(), "u1", "u1-text-0")
	require.NoError(t, err)
	assert.Equal(t, 100, a.Percentage)

	var nf *quiz.ErrNotFound
	_, err = svc.GetAttempt(context.Background(), "u2", "u1-text-0")
	assert.ErrorAs(t, err, &nf)
	_, err = svc.GetAttempt(context.Background(), "u1", "missing")
	assert.ErrorAs(t, err, &nf)
}

func TestInvalidate_NoCache(t *testing.T) {
	svc := NewService(nil, nil, Config{}, nil)
	assert.NoError(t, svc.Invalidate(context.Background(), "u1"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SNAPQUIZ_TREND_WINDOW", "10")
	assert.Equal(t, 10, ConfigFromEnv().TrendWindow)

	t.Setenv("SNAPQUIZ_TREND_WINDOW", "1")
	assert.Equal(t, DefaultTrendWindow, ConfigFromEnv().TrendWindow)

	t.Setenv("SNAPQUIZ_TREND_WINDOW", "lots")
	assert.Equal(t, DefaultTrendWindow, ConfigFromEnv().TrendWindow)
}
