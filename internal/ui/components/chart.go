package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/ui/theme"
)

// BarChart renders percentages as vertical bars, oldest on the left, with
// a dashed line at avg. height is the number of rows for the bars.
func BarChart(values []int, avg float64, height int) string {
	if len(values) == 0 || height <= 0 {
		return ""
	}
	avgRow := int(avg*float64(height)/100 + 0.5)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		threshold := row * 100 / height
		for i, v := range values {
			if i > 0 {
				b.WriteString(" ")
			}
			cell := "   "
			style := theme.Muted
			switch {
			case v >= threshold:
				cell = "###"
				style = theme.ScoreStyle(v)
			case row == avgRow:
				cell = "---"
				style = lipgloss.NewStyle().Foreground(theme.Accent)
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
