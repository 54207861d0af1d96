package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screens/dashboard"
	"github.com/abhisek/snapquiz/internal/screens/history"
	"github.com/abhisek/snapquiz/internal/screens/newquiz"
	"github.com/abhisek/snapquiz/internal/screens/quizlist"
	"github.com/abhisek/snapquiz/internal/screens/screenstest"
)

func TestHomeScreen_MenuNavigation(t *testing.T) {
	svc := screenstest.New()
	h := New(svc.Deps())

	tests := []struct {
		downs int
		check func(any) bool
	}{
		{0, func(s any) bool { _, ok := s.(*newquiz.NewQuizScreen); return ok }},
		{1, func(s any) bool { _, ok := s.(*quizlist.QuizListScreen); return ok }},
		{2, func(s any) bool { _, ok := s.(*history.HistoryScreen); return ok }},
		{3, func(s any) bool { _, ok := s.(*dashboard.DashboardScreen); return ok }},
	}
	for _, tc := range tests {
		h.menu.Selected = 0
		for range tc.downs {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("item %d: expected command", tc.downs)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("item %d: expected PushScreenMsg", tc.downs)
		}
		if !tc.check(push.Screen) {
			t.Errorf("item %d pushed %T", tc.downs, push.Screen)
		}
	}
}

func TestHomeScreen_StatsLine(t *testing.T) {
	svc := screenstest.New()
	h := New(svc.Deps())
	h.Update(h.Init()())
	if !strings.Contains(h.View(100, 30), "Turn your notes into a quiz.") {
		t.Error("expected intro line without attempts")
	}

	answers := []quiz.Answer{{QuestionID: "q1", Selected: 0}, {QuestionID: "q2", Selected: 2}, {QuestionID: "q3", Selected: 3}}
	if _, err := svc.Submit(t.Context(), "quiz-1", "u1", answers, 10); err != nil {
		t.Fatal(err)
	}
	h.Update(h.Refresh()())
	if !strings.Contains(h.View(100, 30), "1 attempts  |  average 67.0%  |  best 67%") {
		t.Errorf("view = %q", h.View(100, 30))
	}
}
