// Package history lists past attempts, newest first.
package history

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
	"github.com/abhisek/snapquiz/internal/screens/results"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []quiz.AttemptSummary
	Err      error
}

// HistoryScreen displays past attempts.
type HistoryScreen struct {
	deps     screens.Deps
	attempts []quiz.AttemptSummary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screens.Deps) *HistoryScreen {
	return &HistoryScreen{deps: deps}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc, userID := s.deps.Performance, s.deps.UserID
	return func() tea.Msg {
		attempts, err := svc.GetHistory(context.Background(), userID, screens.ListLimit)
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected < len(s.attempts) {
				a := s.attempts[s.selected]
				return s, router.Push(results.Load(s.deps, a.ID, a.QuizTitle))
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %d/%d  ",
			prefix, a.CreatedAt.Format("Jan 02 15:04"), layout.FormatDuration(a.TimeTakenSeconds),
			a.Score, a.TotalQuestions)
		pct := theme.ScoreStyle(a.Percentage).Render(fmt.Sprintf("%3d%%", a.Percentage))
		title := fmt.Sprintf("  %s (%s)", a.QuizTitle, a.ContentType.Label())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+pct+style.Render(title)))
		b.WriteString("\n")
	}

	return b.String()
}
