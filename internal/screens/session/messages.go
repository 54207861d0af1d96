package session

import (
	"time"

	"github.com/abhisek/snapquiz/internal/quiz"
)

// quizLoadedMsg is sent when a stored quiz has been fetched.
type quizLoadedMsg struct {
	Quiz      *quiz.Quiz
	Questions []quiz.Question
	Err       error
}

// submittedMsg carries the grading outcome.
type submittedMsg struct {
	Attempt *quiz.Attempt
	Err     error
}

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time
