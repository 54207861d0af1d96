package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	sess "github.com/abhisek/snapquiz/internal/session"
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, theme.ErrorText, "Error: "+s.errMsg)
	}
	if s.confirmQuit {
		return renderConfirm(width, "Quit this quiz?", "Your answers will be discarded.")
	}
	if s.confirmSubmit {
		missing := len(s.state.Questions()) - s.state.AnsweredCount()
		return renderConfirm(width, "Submit now?",
			fmt.Sprintf("%d unanswered question%s will be marked wrong.", missing, plural(missing)))
	}

	switch s.state.Phase() {
	case sess.PhaseLoading:
		return centered(width, theme.Muted, s.spinner.View()+" Loading quiz...")
	case sess.PhaseSubmitting:
		return centered(width, theme.Muted, s.spinner.View()+" Grading your answers...")
	case sess.PhaseFailed:
		return s.renderFailed(width)
	}
	return s.renderQuestion(width, height)
}

// renderQuestion renders the current question with its options.
func (s *SessionScreen) renderQuestion(width, height int) string {
	q := s.state.Current()
	if q == nil {
		return ""
	}
	total := len(s.state.Questions())

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.state.Index()+1, total))
	infoRight := theme.Muted.Render(fmt.Sprintf("%d answered  %s",
		s.state.AnsweredCount(),
		layout.FormatDuration(int(s.state.Elapsed().Seconds()))))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("-", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.QuestionDots(total, s.state.Index(), func(i int) bool {
			return s.state.Selection(i) != quiz.Unanswered
		})))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-4, 76)).
		Foreground(theme.Text).
		Bold(true)
	if !layout.IsCompactHeight(height) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(questionStyle.Render(q.Text))
		b.WriteString("\n")
	}

	opts := components.OptionList{
		Options: q.Options,
		Cursor:  s.cursor,
		Chosen:  s.state.Selection(s.state.Index()),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View()))

	if s.state.IsLast() {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint, "Last question. Press S to submit."))
	}
	return b.String()
}

func (s *SessionScreen) renderFailed(width int) string {
	var b strings.Builder
	b.WriteString(centered(width, theme.Incorrect, "Submission failed"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Body, failureMessage(s.state.Err())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Muted,
		fmt.Sprintf("%d of %d answered", s.state.AnsweredCount(), len(s.state.Questions()))))
	return b.String()
}

func renderConfirm(width int, question, detail string) string {
	return centered(width, theme.Selected, question) + "\n" +
		centered(width, theme.Muted, detail) + "\n\n" +
		centered(width, theme.Body, "(y/n)")
}

func centered(width int, style lipgloss.Style, text string) string {
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
