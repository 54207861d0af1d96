package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", validCard, false},
		{"malformed json", `{"question":`, true},
		{"missing required", `{"question":"x"}`, true},
		{"too few options", `{"question":"x","options":["a","b","c"]}`, true},
		{"extra property", `{"question":"x","options":["a","b","c","d"],"answer":1}`, true},
		{"wrong type", `{"question":7,"options":["a","b","c","d"]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(cardSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("content not preserved")
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should pass, got %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := &Schema{Name: "cache-check", Definition: map[string]any{"type": "object"}}
	first, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Error("expected cached schema instance")
	}
}
