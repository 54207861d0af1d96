package quizlist

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screens/screenstest"
	"github.com/abhisek/snapquiz/internal/screens/session"
)

func TestQuizListScreen_ListsAndOpens(t *testing.T) {
	svc := screenstest.New()
	s := New(svc.Deps())
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view")
	}

	s.Update(s.Init()())
	view := s.View(100, 24)
	for _, want := range []string{"Fractions", "Math", "3 questions"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*session.SessionScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestQuizListScreen_Empty(t *testing.T) {
	svc := screenstest.New()
	svc.Quiz = nil
	s := New(svc.Deps())
	s.Update(s.Refresh()())

	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty state")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("Enter on an empty list should do nothing")
	}
}

func TestQuizListScreen_Error(t *testing.T) {
	svc := screenstest.New()
	svc.ReadErr = errors.New("db closed")
	s := New(svc.Deps())
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "db closed") {
		t.Error("expected error view")
	}
}
