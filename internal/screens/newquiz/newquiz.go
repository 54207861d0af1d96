// Package newquiz is the screen that turns a content analysis into a quiz.
package newquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screen"
	"github.com/abhisek/snapquiz/internal/screens"
	"github.com/abhisek/snapquiz/internal/screens/session"
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type phase int

const (
	phaseInput phase = iota
	phaseGenerating
	phaseFailed
)

type generatedMsg struct {
	Quiz      *quiz.Quiz
	Questions []quiz.Question
	Err       error
}

// NewQuizScreen asks for an analysis file and generates a quiz from it.
type NewQuizScreen struct {
	deps     screens.Deps
	input    components.TextInput
	spinner  spinner.Model
	phase    phase
	analysis analysis.Result
	errMsg   string
}

var _ screen.Screen = (*NewQuizScreen)(nil)
var _ screen.KeyHintProvider = (*NewQuizScreen)(nil)

// New creates the screen. A non-empty path is loaded and generated
// immediately.
func New(deps screens.Deps, path string) *NewQuizScreen {
	s := &NewQuizScreen{
		deps:  deps,
		input: components.NewTextInput("path/to/analysis.json", 512),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
	if path != "" {
		s.input.Model.SetValue(path)
	}
	return s
}

func (s *NewQuizScreen) Init() tea.Cmd {
	if s.input.Value() != "" {
		return s.load()
	}
	return s.input.Init()
}

func (s *NewQuizScreen) Title() string {
	return "New Quiz"
}

func (s *NewQuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *NewQuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.Err != nil {
			s.phase = phaseFailed
			s.errMsg = describe(msg.Err)
			return s, nil
		}
		return s, router.Replace(session.New(s.deps, msg.Quiz, msg.Questions))

	case spinner.TickMsg:
		if s.phase != phaseGenerating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch s.phase {
		case phaseGenerating:
			return s, nil
		case phaseFailed:
			switch msg.String() {
			case "r", "R", "enter":
				return s, s.generate()
			case "e", "E":
				s.phase = phaseInput
				s.errMsg = ""
				return s, s.input.Init()
			}
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.load()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// load reads and validates the analysis file, then starts generation.
func (s *NewQuizScreen) load() tea.Cmd {
	path := s.input.Value()
	if path == "" {
		s.input.SetError("enter the path of an analysis JSON file")
		return nil
	}
	a, err := analysis.LoadFile(path)
	if err != nil {
		s.input.SetError(err.Error())
		return nil
	}
	if err := a.Validate(); err != nil {
		s.input.SetError(err.Error())
		return nil
	}
	s.analysis = a
	return s.generate()
}

func (s *NewQuizScreen) generate() tea.Cmd {
	s.phase = phaseGenerating
	s.errMsg = ""
	svc, userID, a := s.deps.Quizzes, s.deps.UserID, s.analysis
	return tea.Batch(
		func() tea.Msg {
			q, questions, err := svc.Generate(context.Background(), userID, nil, a)
			return generatedMsg{Quiz: q, Questions: questions, Err: err}
		},
		s.spinner.Tick,
	)
}

func describe(err error) string {
	var gen *quiz.ErrGenerationFailed
	var persist *quiz.ErrPersistence
	switch {
	case errors.As(err, &gen):
		if reason := llm.Reason(err); reason != "" {
			return "Could not generate questions: " + reason + ". Try again."
		}
		return "Could not generate questions from this content. Try again."
	case errors.As(err, &persist):
		return "The quiz could not be saved."
	}
	return err.Error()
}

func (s *NewQuizScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	switch s.phase {
	case phaseGenerating:
		line := fmt.Sprintf("%s Writing %s questions...", s.spinner.View(), s.analysis.Type.Label())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Muted.Render(line)))
		if summary := s.analysis.Summary; summary != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Width(min(width-8, 70)).Render(summary)))
		}
		return b.String()

	case phaseFailed:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render("Generation failed")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(s.errMsg)))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Muted.Render("Press R to retry or E to pick another file.")))
		return b.String()
	}

	var form strings.Builder
	form.WriteString(theme.Body.Bold(true).Render("Analysis file"))
	form.WriteString("\n\n")
	form.WriteString(s.input.View())
	form.WriteString("\n\n")
	form.WriteString(theme.Muted.Render("JSON produced by the content analysis step."))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form.String()))
	return b.String()
}
