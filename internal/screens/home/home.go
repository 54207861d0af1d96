// Package home is the root screen with the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/snapquiz/internal/performance"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screen"
	"github.com/abhisek/snapquiz/internal/screens"
	"github.com/abhisek/snapquiz/internal/screens/dashboard"
	"github.com/abhisek/snapquiz/internal/screens/history"
	"github.com/abhisek/snapquiz/internal/screens/newquiz"
	"github.com/abhisek/snapquiz/internal/screens/quizlist"
	"github.com/abhisek/snapquiz/internal/ui/components"
	"github.com/abhisek/snapquiz/internal/ui/layout"
	"github.com/abhisek/snapquiz/internal/ui/theme"
)

type statsLoadedMsg struct {
	Overall performance.Overall
	Err     error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    screens.Deps
	menu    components.Menu
	overall performance.Overall
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "New Quiz", Action: func() tea.Cmd {
			return router.Push(newquiz.New(deps, ""))
		}},
		{Label: "My Quizzes", Action: func() tea.Cmd {
			return router.Push(quizlist.New(deps))
		}},
		{Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(deps))
		}},
		{Label: "Dashboard", Action: func() tea.Cmd {
			return router.Push(dashboard.New(deps))
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	svc, userID := h.deps.Performance, h.deps.UserID
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := svc.GetPerformance(context.Background(), userID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Overall: p.Overall}
	}
}

// Refresh reloads the stats line after a quiz.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.overall = msg.Overall
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	if !layout.IsCompactHeight(height) {
		sections = append(sections, RenderBanner(width))
	}
	sections = append(sections, theme.Subtitle.Render(h.statsLine()))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) statsLine() string {
	if !h.overall.HasData {
		return "Turn your notes into a quiz."
	}
	return fmt.Sprintf("%d attempts  |  average %.1f%%  |  best %d%%",
		h.overall.TotalAttempts, h.overall.AvgScore, h.overall.BestScore)
}
