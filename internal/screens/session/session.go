// Package session is the screen for taking a quiz.
package session

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screen"
	"github.com/abhisek/snapquiz/internal/screens"
	"github.com/abhisek/snapquiz/internal/screens/results"
	sess "github.com/abhisek/snapquiz/internal/session"
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

// SessionScreen runs one quiz session: answering, submitting and retrying
// a failed submission.
type SessionScreen struct {
	deps    screens.Deps
	quizID  string
	state   *sess.QuizSession
	cursor  int
	spinner spinner.Model

	confirmQuit   bool
	confirmSubmit bool
	errMsg        string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Modal = (*SessionScreen)(nil)

// New starts a session on a quiz that is already loaded, such as one that
// was just generated. The timer starts with the first question on screen.
func New(deps screens.Deps, q *quiz.Quiz, questions []quiz.Question) *SessionScreen {
	s := newScreen(deps, q.ID)
	s.begin(q, questions)
	return s
}

// Open fetches a stored quiz and starts a session on it.
func Open(deps screens.Deps, quizID string) *SessionScreen {
	return newScreen(deps, quizID)
}

func newScreen(deps screens.Deps, quizID string) *SessionScreen {
	return &SessionScreen{
		deps:   deps,
		quizID: quizID,
		state:  sess.New(deps.Clock),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	switch {
	case s.errMsg != "":
		return nil
	case s.state.Phase() == sess.PhaseLoading:
		return tea.Batch(s.loadQuiz(), s.spinner.Tick)
	case s.state.Phase() == sess.PhaseInProgress:
		return tick()
	}
	return nil
}

// begin loads the questions and starts the clock on the first one.
func (s *SessionScreen) begin(q *quiz.Quiz, questions []quiz.Question) {
	if err := s.state.Load(q, questions); err != nil {
		s.errMsg = err.Error()
		return
	}
	if err := s.state.Start(); err != nil {
		s.errMsg = err.Error()
	}
}

func (s *SessionScreen) Title() string {
	if q := s.state.Quiz(); q != nil {
		return q.Title
	}
	return "Quiz"
}

// CapturesEscape keeps Esc inside the screen while answers could be lost.
func (s *SessionScreen) CapturesEscape() bool {
	return !s.state.Phase().Terminal() && s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit, s.confirmSubmit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case s.state.Phase() == sess.PhaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "E", Description: "Edit answers"},
			{Key: "Esc", Description: "Discard"},
		}
	case s.state.Phase() == sess.PhaseReady, s.state.Phase() == sess.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "<- ->", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case timerTickMsg:
		if s.state.Phase() == sess.PhaseInProgress {
			return s, tick()
		}
		return s, nil

	case spinner.TickMsg:
		switch s.state.Phase() {
		case sess.PhaseLoading, sess.PhaseSubmitting:
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) loadQuiz() tea.Cmd {
	svc, userID, id := s.deps.Quizzes, s.deps.UserID, s.quizID
	return func() tea.Msg {
		q, questions, err := svc.Get(context.Background(), userID, id)
		return quizLoadedMsg{Quiz: q, Questions: questions, Err: err}
	}
}

func (s *SessionScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.begin(msg.Quiz, msg.Questions)
	if s.errMsg != "" {
		return s, nil
	}
	return s, tick()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "esc" || key == "enter" {
			return s, router.Back
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			if err := s.state.Cancel(); err != nil {
				return s, nil
			}
			return s, router.Back
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmSubmit {
		switch key {
		case "y", "Y", "enter":
			s.confirmSubmit = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch s.state.Phase() {
	case sess.PhaseLoading:
		if key == "esc" {
			return s, router.Back
		}
		return s, nil
	case sess.PhaseSubmitting:
		return s, nil
	case sess.PhaseFailed:
		return s.handleFailedKey(key)
	case sess.PhaseReady, sess.PhaseInProgress:
		return s.handleAnswerKey(key)
	}
	return s, nil
}

func (s *SessionScreen) handleFailedKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "r", "R", "enter":
		return s, s.submit()
	case "e", "E":
		if err := s.state.Resume(); err == nil {
			return s, tick()
		}
	case "esc":
		s.confirmQuit = true
	}
	return s, nil
}

func (s *SessionScreen) handleAnswerKey(key string) (screen.Screen, tea.Cmd) {
	if idx, ok := components.OptionIndex(key); ok {
		_ = s.state.Select(idx)
		s.cursor = idx
		return s, nil
	}

	switch key {
	case "esc", "q":
		s.confirmQuit = true
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < quiz.NumOptions-1 {
			s.cursor++
		}
	case "enter", "space", " ":
		_ = s.state.Select(s.cursor)
		if !s.state.IsLast() {
			_ = s.state.Next()
			s.syncCursor()
		}
		return s, nil
	case "x", "backspace", "0":
		_ = s.state.Select(quiz.Unanswered)
		return s, nil
	case "right", "l", "n", "tab":
		_ = s.state.Next()
		s.syncCursor()
		return s, nil
	case "left", "h", "p", "shift+tab":
		_ = s.state.Prev()
		s.syncCursor()
		return s, nil
	case "s", "S", "ctrl+s":
		if s.state.AnsweredCount() < len(s.state.Questions()) {
			s.confirmSubmit = true
			return s, nil
		}
		return s, s.submit()
	}
	return s, nil
}

// syncCursor puts the cursor on the current question's selection.
func (s *SessionScreen) syncCursor() {
	if sel := s.state.Selection(s.state.Index()); sel != quiz.Unanswered {
		s.cursor = sel
		return
	}
	s.cursor = 0
}

func (s *SessionScreen) submit() tea.Cmd {
	req, err := s.state.Submit()
	if err != nil {
		return nil
	}
	grader, userID := s.deps.Grader, s.deps.UserID
	return tea.Batch(
		func() tea.Msg {
			a, err := grader.Submit(context.Background(), req.QuizID, userID, req.Answers, req.TimeTakenSeconds)
			return submittedMsg{Attempt: a, Err: err}
		},
		s.spinner.Tick,
	)
}

func (s *SessionScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		_ = s.state.Fail(msg.Err)
		return s, nil
	}
	if err := s.state.Complete(msg.Attempt); err != nil {
		return s, nil
	}
	return s, router.Replace(results.New(s.state.Quiz().Title, msg.Attempt))
}

// failureMessage describes a failed submission for the user.
func failureMessage(err error) string {
	var notFound *quiz.ErrNotFound
	var persist *quiz.ErrPersistence
	switch {
	case errors.As(err, &notFound):
		return "This quiz no longer exists."
	case errors.As(err, &persist):
		return "Could not save your attempt. Your answers are kept."
	case err != nil:
		return err.Error()
	}
	return "Submission failed."
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
