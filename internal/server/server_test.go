package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/snapquiz/internal/grader"
	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/quizgen"
	"github.com/abhisek/snapquiz/internal/store"
)

const quizResponse = `{"questions":[
 {"question":"Q1","options":["a","b","c","d"],"correct_option":0,"explanation":"e1","difficulty":"easy"},
 {"question":"Q2","options":["a","b","c","d"],"correct_option":2,"explanation":"e2","difficulty":"medium"},
 {"question":"Q3","options":["a","b","c","d"],"correct_option":1,"explanation":"e3","difficulty":"hard"}
]}`

const analysisBody = `{"analysis":{"type":"math","extractedText":"2x+3=7","summary":"Linear equations. Solve for x."}}`

type testEnv struct {
	router   *gin.Engine
	provider *llm.MockProvider
	store    *store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	provider := llm.NewMockProvider()
	cfg := quizgen.DefaultConfig()
	quizzes := quizgen.NewService(quizgen.NewLLMSource(provider, cfg), st.QuizRepo(), cfg, nil)
	perf := performance.NewService(st.AttemptRepo(), nil, performance.Config{}, nil)
	grade := grader.NewService(st.QuizRepo(), st.AttemptRepo(), perf, nil)

	srv := New(Config{CORSOrigins: []string{"http://localhost:5173"}}, quizzes, grade, perf, nil)
	return &testEnv{router: srv.Router(), provider: provider, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type createdQuiz struct {
	Quiz      quiz.Quiz      `json:"quiz"`
	Questions []questionView `json:"questions"`
}

func (e *testEnv) createQuiz(t *testing.T, user string) createdQuiz {
	t.Helper()
	e.provider.AddResponse(llm.MockResponse{Content: json.RawMessage(quizResponse)})
	rec := e.do(t, http.MethodPost, "/api/quizzes", user, analysisBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out createdQuiz
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequireUser(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/quizzes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Code)
}

func TestCreateQuiz(t *testing.T) {
	e := newTestEnv(t)
	e.provider.AddResponse(llm.MockResponse{Content: json.RawMessage(quizResponse)})
	rec := e.do(t, http.MethodPost, "/api/quizzes", "u1", analysisBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "correct_option")
	assert.NotContains(t, rec.Body.String(), "explanation")

	var out createdQuiz
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Linear equations", out.Quiz.Title)
	assert.Equal(t, 3, out.Quiz.TotalQuestions)
	require.Len(t, out.Questions, 3)
	assert.NotEmpty(t, out.Questions[1].Options[3])
}

func TestCreateQuiz_BadRequests(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/quizzes", "u1", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/quizzes", "u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/quizzes", "u1", `{"analysis":{"extractedText":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)
}

func TestCreateQuiz_GenerationFailed(t *testing.T) {
	e := newTestEnv(t)
	// No canned response: the mock reports the provider as unavailable.
	rec := e.do(t, http.MethodPost, "/api/quizzes", "u1", analysisBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "generation_failed", decodeError(t, rec).Code)
}

func TestGetQuiz_HidesAnswers(t *testing.T) {
	e := newTestEnv(t)
	created := e.createQuiz(t, "u1")

	rec := e.do(t, http.MethodGet, "/api/quizzes/"+created.Quiz.ID, "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correct_option")
	assert.NotContains(t, rec.Body.String(), "explanation")

	var out struct {
		Questions []questionView `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Questions, 3)

	rec = e.do(t, http.MethodGet, "/api/quizzes/"+created.Quiz.ID, "u2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListQuizzes(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/quizzes", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"quizzes":[]}`, rec.Body.String())

	e.createQuiz(t, "u1")
	rec = e.do(t, http.MethodGet, "/api/quizzes?limit=5", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Quizzes []quiz.Quiz `json:"quizzes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Quizzes, 1)

	rec = e.do(t, http.MethodGet, "/api/quizzes?limit=-1", "u1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAttempt_Scenario(t *testing.T) {
	e := newTestEnv(t)
	created := e.createQuiz(t, "u1")
	qs := created.Questions

	body := fmt.Sprintf(`{"answers":[
		{"question_id":%q,"selected":0},
		{"question_id":%q,"selected":2},
		{"question_id":%q,"selected":3}],"time_taken_seconds":42}`, qs[0].ID, qs[1].ID, qs[2].ID)
	rec := e.do(t, http.MethodPost, "/api/quizzes/"+created.Quiz.ID+"/attempts", "u1", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var a quiz.Attempt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, 67, a.Percentage)
	assert.Equal(t, 42, a.TimeTakenSeconds)
	require.Len(t, a.Answers, 3)
	assert.False(t, a.Answers[2].IsCorrect)

	rec = e.do(t, http.MethodGet, "/api/attempts/"+a.ID, "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/attempts/"+a.ID, "u2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAttempt_Errors(t *testing.T) {
	e := newTestEnv(t)
	created := e.createQuiz(t, "u1")
	path := "/api/quizzes/" + created.Quiz.ID + "/attempts"

	rec := e.do(t, http.MethodPost, path, "u1", `{"answers":[{"question_id":"nope","selected":0}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_answer_reference", decodeError(t, rec).Code)

	body := fmt.Sprintf(`{"answers":[{"question_id":%q,"selected":9}]}`, created.Questions[0].ID)
	rec = e.do(t, http.MethodPost, path, "u1", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_selection", decodeError(t, rec).Code)

	rec = e.do(t, http.MethodPost, "/api/quizzes/missing/attempts", "u1", `{"answers":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryAndPerformance(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/performance", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty performance.Performance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.False(t, empty.Overall.HasData)

	created := e.createQuiz(t, "u1")
	path := "/api/quizzes/" + created.Quiz.ID + "/attempts"
	for i := 0; i < 2; i++ {
		rec := e.do(t, http.MethodPost, path, "u1", `{"answers":[],"time_taken_seconds":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/attempts", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		Attempts []quiz.AttemptSummary `json:"attempts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist.Attempts, 2)
	assert.NotEqual(t, hist.Attempts[0].ID, hist.Attempts[1].ID)
	assert.Equal(t, "Linear equations", hist.Attempts[0].QuizTitle)

	rec = e.do(t, http.MethodGet, "/api/performance", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p performance.Performance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.Overall.HasData)
	assert.Equal(t, 2, p.Overall.TotalAttempts)
	assert.True(t, p.RecentTrend.Chartable)
}

func TestCORS(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/quizzes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SNAPQUIZ_HTTP_ADDR", "")
	t.Setenv("SNAPQUIZ_CORS_ORIGINS", "https://a.example, https://b.example,")
	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	srv := New(Config{Addr: "127.0.0.1:0"}, nil, nil, nil, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
