// Package dashboard shows the user's performance summary.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/screen"
	"github.com/abhisek/snapquiz/internal/screens"
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type performanceLoadedMsg struct {
	Performance *performance.Performance
	Err         error
}

// chartHeight is the number of rows of the trend chart.
const chartHeight = 6

// DashboardScreen renders overall stats, per-type averages and the recent
// score trend.
type DashboardScreen struct {
	deps   screens.Deps
	perf   *performance.Performance
	loaded bool
	failed bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Refresher = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(deps screens.Deps) *DashboardScreen {
	return &DashboardScreen{deps: deps}
}

func (s *DashboardScreen) Init() tea.Cmd {
	svc, userID := s.deps.Performance, s.deps.UserID
	return func() tea.Msg {
		p, err := svc.GetPerformance(context.Background(), userID)
		return performanceLoadedMsg{Performance: p, Err: err}
	}
}

// Refresh reloads the stats.
func (s *DashboardScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case performanceLoadedMsg:
		s.loaded = true
		// A failed read is shown the same as an empty history.
		s.failed = msg.Err != nil
		s.perf = msg.Performance
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	if s.failed || s.perf == nil || !s.perf.Overall.HasData {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No data yet. Finish a quiz to see your stats.")
	}

	p := s.perf
	var b strings.Builder

	b.WriteString(heading("Overall"))
	b.WriteString(fmt.Sprintf("  Attempts  %d\n", p.Overall.TotalAttempts))
	b.WriteString(fmt.Sprintf("  Average   %s\n", scoreText(p.Overall.AvgScore)))
	b.WriteString(fmt.Sprintf("  Best      %s\n", theme.ScoreStyle(p.Overall.BestScore).Render(fmt.Sprintf("%d%%", p.Overall.BestScore))))

	b.WriteString(heading("By content type"))
	barWidth := min(width-8, 50)
	for _, st := range p.ByContentType {
		label := fmt.Sprintf("%-8s", st.ContentType.Label())
		b.WriteString("  ")
		b.WriteString(components.NewProgressBar(label, int(st.AvgScore+0.5), true, barWidth).View())
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  (%d)", st.Attempts)))
		b.WriteString("\n")
	}

	b.WriteString(heading("Recent trend"))
	trend := p.RecentTrend
	if !trend.Chartable {
		b.WriteString(theme.Muted.Render("  Take at least two quizzes to see a trend."))
		b.WriteString("\n")
	} else {
		values := make([]int, len(trend.Points))
		for i, pt := range trend.Points {
			values[i] = pt.Percentage
		}
		h := chartHeight
		if layout.IsCompactHeight(height) {
			h = chartHeight / 2
		}
		b.WriteString(indent(components.BarChart(values, trend.Average, h)))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  oldest to newest, average %s", formatScore(trend.Average))))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func heading(s string) string {
	return "\n" + theme.Selected.Render(s) + "\n"
}

func scoreText(avg float64) string {
	return theme.ScoreStyle(int(avg + 0.5)).Render(formatScore(avg))
}

func formatScore(avg float64) string {
	return fmt.Sprintf("%.1f%%", avg)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
