package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{"api_key", "sk-123", "user_id", "u1", "quiz_id", "q1", "dangling"})
	if got[1] != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", got[1])
	}
	if s, ok := got[3].(string); !ok || !strings.HasPrefix(s, "hash:") || s == "hash:" {
		t.Errorf("user_id = %v, want hashed", got[3])
	}
	if got[5] != "q1" {
		t.Errorf("quiz_id = %v, want untouched", got[5])
	}
	if got[6] != "dangling" {
		t.Errorf("odd trailing key should be kept, got %v", got)
	}
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "grader").Info("attempt stored", "attempt_id", "a1", "password", "hunter2")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "grader" || fields["attempt_id"] != "a1" {
		t.Errorf("fields = %v", fields)
	}
	if fields["password"] != "[REDACTED]" {
		t.Errorf("password = %v, want redacted", fields["password"])
	}
}

func TestNop(t *testing.T) {
	Nop().Info("ignored", "k", "v")
}
