package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

// OptionLabels are the letters shown next to the four options.
var OptionLabels = [quiz.NumOptions]string{"A", "B", "C", "D"}

// OptionList renders a question's four options in their stored order.
// Cursor is the highlighted row; Chosen is the recorded selection or
// quiz.Unanswered. When Reveal is set, the correct option is shown in green
// and a wrong choice in red.
type OptionList struct {
	Options [quiz.NumOptions]string
	Cursor  int
	Chosen  int
	Correct int
	Reveal  bool
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		marker := "  "
		if i == o.Chosen {
			marker = "* "
		}
		prefix := "  "
		if !o.Reveal && i == o.Cursor {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s%s)  %s", prefix, marker, OptionLabels[i], opt)

		var style lipgloss.Style
		switch {
		case o.Reveal && i == o.Correct:
			style = theme.Correct
		case o.Reveal && i == o.Chosen:
			style = theme.Incorrect
		case o.Reveal:
			style = theme.Muted
		case i == o.Cursor:
			style = theme.Selected
		case i == o.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// OptionIndex maps a key to an option index: 1-4 or a-d. It returns
// false for any other key.
func OptionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

// QuestionDots renders one dot per question: the current question is
// bracketed, answered ones are filled.
func QuestionDots(total, current int, answered func(i int) bool) string {
	parts := make([]string, total)
	for i := 0; i < total; i++ {
		dot := "o"
		style := theme.DotEmpty
		if answered(i) {
			dot = "*"
			style = theme.DotAnswered
		}
		if i == current {
			parts[i] = theme.DotCurrent.Render("[" + dot + "]")
		} else {
			parts[i] = style.Render(" " + dot + " ")
		}
	}
	return strings.Join(parts, "")
}
