package newquiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/snapquiz/internal/llm"
	"github.com/abhisek/snapquiz/internal/quiz"
	"github.com/abhisek/snapquiz/internal/router"
	"github.com/abhisek/snapquiz/internal/screens/screenstest"
	"github.com/abhisek/snapquiz/internal/screens/session"
)

func writeAnalysis(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const mathAnalysis = `{
  "type": "math",
  "extractedText": "1/2 + 1/4 = ?",
  "summary": "Adding fractions with unlike denominators.",
  "solutionSteps": ["Find a common denominator", "Add the numerators"],
  "finalAnswer": "3/4"
}`

// run executes cmd and returns the generation result, skipping spinner ticks.
func run(t *testing.T, cmd tea.Cmd) generatedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if g, ok := c().(generatedMsg); ok {
				return g
			}
		}
	case generatedMsg:
		return msg
	}
	t.Fatal("no generation result")
	return generatedMsg{}
}

func TestNewQuizScreen_GeneratesFromPath(t *testing.T) {
	svc := screenstest.New()
	s := New(svc.Deps(), writeAnalysis(t, mathAnalysis))

	msg := run(t, s.Init())
	if s.phase != phaseGenerating {
		t.Fatalf("phase = %d, want generating", s.phase)
	}
	if !strings.Contains(s.View(80, 24), "Writing Math questions") {
		t.Errorf("view = %q", s.View(80, 24))
	}

	_, cmd := s.Update(msg)
	if cmd == nil {
		t.Fatal("expected navigation to the quiz")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*session.SessionScreen); !ok {
		t.Errorf("replaced with %T", replace.Screen)
	}
}

func TestNewQuizScreen_RetryAfterFailure(t *testing.T) {
	svc := screenstest.New()
	svc.GenerateErr = &quiz.ErrGenerationFailed{Err: errors.New("model timeout")}
	s := New(svc.Deps(), writeAnalysis(t, mathAnalysis))

	s.Update(run(t, s.Init()))
	if s.phase != phaseFailed {
		t.Fatalf("phase = %d, want failed", s.phase)
	}
	if !strings.Contains(s.View(80, 24), "Could not generate questions") {
		t.Error("expected generation failure message")
	}

	svc.GenerateErr = nil
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	msg := run(t, cmd)
	if svc.GenerateCalls != 2 {
		t.Errorf("GenerateCalls = %d, want 2", svc.GenerateCalls)
	}
	if msg.Err != nil {
		t.Fatalf("retry failed: %v", msg.Err)
	}
}

func TestNewQuizScreen_InputErrors(t *testing.T) {
	svc := screenstest.New()
	s := New(svc.Deps(), "")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty path should not generate")
	}
	if !strings.Contains(s.View(80, 24), "enter the path") {
		t.Error("expected empty path message")
	}

	s = New(svc.Deps(), filepath.Join(t.TempDir(), "missing.json"))
	if s.Init() != nil {
		t.Error("missing file should not generate")
	}
	if !strings.Contains(s.input.Err(), "open analysis") {
		t.Errorf("error = %q", s.input.Err())
	}

	s = New(svc.Deps(), writeAnalysis(t, `{"type":"text","extractedText":"x"}`))
	if s.Init() != nil {
		t.Error("invalid analysis should not generate")
	}
	if !strings.Contains(s.input.Err(), "summary") {
		t.Errorf("error = %q", s.input.Err())
	}
	if svc.GenerateCalls != 0 {
		t.Errorf("GenerateCalls = %d, want 0", svc.GenerateCalls)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&quiz.ErrGenerationFailed{Err: &llm.ErrAuth{Status: 401}}, "Could not generate questions: the AI provider rejected the API key. Try again."},
		{&quiz.ErrGenerationFailed{Err: errors.New("no usable questions")}, "Could not generate questions from this content. Try again."},
		{&quiz.ErrPersistence{Op: "save quiz", Err: errors.New("disk full")}, "The quiz could not be saved."},
	}
	for _, tt := range tests {
		if got := describe(tt.err); got != tt.want {
			t.Errorf("describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
