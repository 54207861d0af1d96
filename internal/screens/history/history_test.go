package history

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screens/results"
	"github.com/abhisek/snapquiz/internal/screens/screenstest"
)

func seeded(t *testing.T) *screenstest.Services {
	t.Helper()
	svc := screenstest.New()
	for _, sel := range [][]int{{0, 2, 3}, {0, 2, 1}} {
		answers := make([]quiz.Answer, len(sel))
		for i, v := range sel {
			answers[i] = quiz.Answer{QuestionID: svc.Questions[i].ID, Selected: v}
		}
		if _, err := svc.Submit(t.Context(), "quiz-1", "u1", answers, 30); err != nil {
			t.Fatal(err)
		}
	}
	return svc
}

func TestHistoryScreen_ListsNewestFirst(t *testing.T) {
	svc := seeded(t)
	s := New(svc.Deps())
	s.Update(s.Init()())

	view := s.View(100, 24)
	first := strings.Index(view, "100%")
	second := strings.Index(view, "67%")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected newest attempt (100%%) before the older one (67%%):\n%s", view)
	}
	if !strings.Contains(view, "Fractions (Math)") {
		t.Error("expected quiz title and content type")
	}
}

func TestHistoryScreen_EnterReviews(t *testing.T) {
	svc := seeded(t)
	s := New(svc.Deps())
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	rs, ok := push.Screen.(*results.ResultsScreen)
	if !ok {
		t.Fatalf("pushed %T", push.Screen)
	}
	rs.Update(rs.Init()())
	if !strings.Contains(rs.View(80, 30), "2 / 3 correct") {
		t.Error("expected the older attempt to load")
	}
}

func TestHistoryScreen_EmptyAndError(t *testing.T) {
	svc := screenstest.New()
	s := New(svc.Deps())
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No attempts yet") {
		t.Error("expected empty state")
	}

	svc.ReadErr = errors.New("boom")
	s = New(svc.Deps())
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "boom") {
		t.Error("expected error view")
	}
}
