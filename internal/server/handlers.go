package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
)

type createQuizRequest struct {
	HistoryID *string          `json:"history_id"`
	Analysis  *analysis.Result `json:"analysis" binding:"required"`
}

// questionView is a question as shown while taking a quiz. The correct
// option and explanation are withheld until the attempt is graded.
type questionView struct {
	ID         string                  `json:"id"`
	Position   int                     `json:"position"`
	Text       string                  `json:"question"`
	Options    [quiz.NumOptions]string `json:"options"`
	Difficulty quiz.Difficulty         `json:"difficulty"`
}

func toQuestionViews(qs []quiz.Question) []questionView {
	out := make([]questionView, len(qs))
	for i, q := range qs {
		out[i] = questionView{ID: q.ID, Position: q.Position, Text: q.Text, Options: q.Options, Difficulty: q.Difficulty}
	}
	return out
}

type submitRequest struct {
	Answers          []quiz.Answer `json:"answers"`
	TimeTakenSeconds int           `json:"time_taken_seconds"`
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// POST /api/quizzes
func (s *Server) createQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	q, questions, err := s.quizzes.Generate(c.Request.Context(), userID(c), req.HistoryID, *req.Analysis)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quiz": q, "questions": toQuestionViews(questions)})
}

// GET /api/quizzes
func (s *Server) listQuizzes(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	quizzes, err := s.quizzes.List(c.Request.Context(), userID(c), limit)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// GET /api/quizzes/:id
func (s *Server) getQuiz(c *gin.Context) {
	q, questions, err := s.quizzes.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": q, "questions": toQuestionViews(questions)})
}

// POST /api/quizzes/:id/attempts
func (s *Server) submitAttempt(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	a, err := s.grader.Submit(c.Request.Context(), c.Param("id"), userID(c), req.Answers, req.TimeTakenSeconds)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GET /api/attempts
func (s *Server) listAttempts(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	attempts, err := s.performance.GetHistory(c.Request.Context(), userID(c), limit)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	if attempts == nil {
		attempts = []quiz.AttemptSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

// GET /api/attempts/:id
func (s *Server) getAttempt(c *gin.Context) {
	a, err := s.performance.GetAttempt(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/performance
func (s *Server) getPerformance(c *gin.Context) {
	p, err := s.performance.GetPerformance(c.Request.Context(), userID(c))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// limitParam reads ?limit=N. It writes a 400 and returns false when the
// value is not a non-negative integer.
func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request", errBadLimit)
		return 0, false
	}
	return n, true
}
