// Package results shows a graded attempt with every question revealed.
package results

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
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type attemptLoadedMsg struct {
	Attempt *quiz.Attempt
	Err     error
}

// ResultsScreen reviews one attempt question by question.
type ResultsScreen struct {
	deps      screens.Deps
	attemptID string
	quizTitle string
	attempt   *quiz.Attempt
	index     int
	errMsg    string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New shows an attempt that is already in hand, such as one just graded.
func New(quizTitle string, a *quiz.Attempt) *ResultsScreen {
	return &ResultsScreen{quizTitle: quizTitle, attempt: a, attemptID: a.ID}
}

// Load fetches the attempt when the screen starts.
func Load(deps screens.Deps, attemptID, quizTitle string) *ResultsScreen {
	return &ResultsScreen{deps: deps, attemptID: attemptID, quizTitle: quizTitle}
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.attempt != nil {
		return nil
	}
	svc, userID, id := s.deps.Performance, s.deps.UserID, s.attemptID
	return func() tea.Msg {
		a, err := svc.GetAttempt(context.Background(), userID, id)
		return attemptLoadedMsg{Attempt: a, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "<- ->", Description: "Question"},
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempt = msg.Attempt
		return s, nil

	case tea.KeyMsg:
		if s.attempt == nil {
			return s, nil
		}
		switch msg.String() {
		case "right", "l", "n", "tab":
			if s.index < len(s.attempt.Answers)-1 {
				s.index++
			}
		case "left", "h", "p", "shift+tab":
			if s.index > 0 {
				s.index--
			}
		case "enter":
			return s, router.Home
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.attempt == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading attempt...")
	}

	a := s.attempt
	var b strings.Builder
	b.WriteString("\n")

	if s.quizTitle != "" {
		b.WriteString(theme.Title.Width(width).Render(s.quizTitle))
		b.WriteString("\n")
	}
	score := theme.ScoreStyle(a.Percentage).Bold(true).
		Render(fmt.Sprintf("%d / %d correct  (%d%%)", a.Score, a.TotalQuestions, a.Percentage))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, score))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Muted.Render("Time "+layout.FormatDuration(a.TimeTakenSeconds))))
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar("", a.Percentage, true, barWidth).View()))
	b.WriteString("\n\n")

	if len(a.Answers) == 0 {
		return b.String()
	}

	rec := a.Answers[s.index]
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.QuestionDots(len(a.Answers), s.index, func(i int) bool { return a.Answers[i].IsCorrect })))
	b.WriteString("\n\n")

	var q strings.Builder
	q.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Q%d. %s", s.index+1, rec.Question)))
	q.WriteString("\n\n")
	q.WriteString(components.OptionList{
		Options: rec.Options,
		Chosen:  rec.Selected,
		Correct: rec.Correct,
		Reveal:  true,
	}.View())
	q.WriteString("\n")
	switch {
	case !rec.Answered():
		q.WriteString(theme.Muted.Render("Not answered"))
	case rec.IsCorrect:
		q.WriteString(theme.Correct.Render("Correct"))
	default:
		q.WriteString(theme.Incorrect.Render("Incorrect"))
	}
	if rec.Explanation != "" {
		q.WriteString("\n\n")
		q.WriteString(theme.Hint.Width(min(width-8, 70)).Render(rec.Explanation))
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q.String()))
	return b.String()
}
