package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/quizgen"
)

var errMissingUser = errors.New("missing " + UserHeader + " header")

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes an error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// respondServiceError maps domain errors to HTTP statuses.
func (s *Server) respondServiceError(c *gin.Context, err error) {
	var (
		validation *analysis.ValidationError
		reference  *quiz.ErrInvalidAnswerReference
		selection  *quiz.ErrInvalidSelection
		notFound   *quiz.ErrNotFound
		generation *quiz.ErrGenerationFailed
		persist    *quiz.ErrPersistence
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, quizgen.ErrMissingUser):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.As(err, &reference):
		RespondError(c, http.StatusBadRequest, "invalid_answer_reference", err)
	case errors.As(err, &selection):
		RespondError(c, http.StatusBadRequest, "invalid_selection", err)
	case errors.As(err, &notFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &generation):
		RespondError(c, http.StatusBadGateway, "generation_failed", err)
	case errors.As(err, &persist):
		s.log.Error("persistence failure", "op", persist.Op, "error", persist.Err)
		RespondError(c, http.StatusInternalServerError, "persistence_failure", errors.New("storage unavailable, try again"))
	default:
		s.log.Error("unhandled error", "path", c.FullPath(), "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
