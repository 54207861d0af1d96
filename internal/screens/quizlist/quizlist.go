// Package quizlist lists the user's saved quizzes so they can be retaken.
package quizlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screen"
	"github.com/abhisek/snapquiz/internal/screens"
	"github.com/abhisek/snapquiz/internal/screens/session"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type quizzesLoadedMsg struct {
	Quizzes []quiz.Quiz
	Err     error
}

// QuizListScreen shows saved quizzes, newest first.
type QuizListScreen struct {
	deps     screens.Deps
	quizzes  []quiz.Quiz
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*QuizListScreen)(nil)
var _ screen.KeyHintProvider = (*QuizListScreen)(nil)
var _ screen.Refresher = (*QuizListScreen)(nil)

// New creates a new QuizListScreen.
func New(deps screens.Deps) *QuizListScreen {
	return &QuizListScreen{deps: deps}
}

func (s *QuizListScreen) Init() tea.Cmd {
	svc, userID := s.deps.Quizzes, s.deps.UserID
	return func() tea.Msg {
		qs, err := svc.List(context.Background(), userID, screens.ListLimit)
		return quizzesLoadedMsg{Quizzes: qs, Err: err}
	}
}

// Refresh reloads the list when returning from a quiz.
func (s *QuizListScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *QuizListScreen) Title() string {
	return "My Quizzes"
}

func (s *QuizListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Take quiz"},
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.quizzes = msg.Quizzes
		if s.selected >= len(s.quizzes) {
			s.selected = max(len(s.quizzes)-1, 0)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.quizzes)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.quizzes) {
				return s, router.Push(session.Open(s.deps, s.quizzes[s.selected].ID))
			}
		}
	}
	return s, nil
}

func (s *QuizListScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading quizzes...")
	}
	if len(s.quizzes) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Create one from the home screen.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, q := range s.quizzes {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-8s  %d questions  %s",
			prefix, q.CreatedAt.Format("Jan 02, 2006"), q.ContentType.Label(), q.TotalQuestions, q.Title)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
