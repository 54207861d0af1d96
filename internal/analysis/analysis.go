// Package analysis describes the content analysis result that quizzes are
// generated from. The analysis itself is produced upstream (OCR plus an AI
// pass); this package only models, normalizes and loads it.
package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// ContentType classifies the analyzed content.
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentMath     ContentType = "math"
	ContentAptitude ContentType = "aptitude"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{ContentText, ContentMath, ContentAptitude}

// ParseContentType maps a raw value to a ContentType. Unknown or empty
// values fall back to ContentText.
func ParseContentType(s string) ContentType {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentMath:
		return ContentMath
	case ContentAptitude:
		return ContentAptitude
	default:
		return ContentText
	}
}

// Label returns a human-readable name.
func (c ContentType) Label() string {
	switch c {
	case ContentMath:
		return "Math"
	case ContentAptitude:
		return "Aptitude"
	default:
		return "Text"
	}
}

// Step is one titled step of a worked solution.
type Step struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts either an object or a bare string.
func (s *Step) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Step{Content: text}
		return nil
	}
	type plain Step
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Step(p)
	return nil
}

// Result is the structured summary of a scanned piece of content.
type Result struct {
	Type              ContentType `json:"type"`
	ExtractedText     string      `json:"extractedText"`
	Summary           string      `json:"summary"`
	VisualExplanation string      `json:"visualExplanation,omitempty"`
	KeyWords          []string    `json:"keyWords,omitempty"`

	// RealWorldExamples is meaningful for text content.
	RealWorldExamples []string `json:"realWorldExamples,omitempty"`

	// SolutionSteps and FinalAnswer are meaningful for math and aptitude content.
	SolutionSteps []Step `json:"solutionSteps,omitempty"`
	FinalAnswer   string `json:"finalAnswer,omitempty"`
}

// ValidationError reports a missing or malformed analysis field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("analysis: %s is required", e.Field)
}

// Normalize returns a copy with the content type resolved and free text
// trimmed.
func (r Result) Normalize() Result {
	out := r
	out.Type = ParseContentType(string(r.Type))
	out.ExtractedText = strings.TrimSpace(r.ExtractedText)
	out.Summary = strings.TrimSpace(r.Summary)
	out.VisualExplanation = strings.TrimSpace(r.VisualExplanation)
	out.FinalAnswer = strings.TrimSpace(r.FinalAnswer)
	out.KeyWords = compact(r.KeyWords)
	out.RealWorldExamples = compact(r.RealWorldExamples)
	return out
}

// Validate checks the fields quiz generation depends on.
func (r Result) Validate() error {
	if strings.TrimSpace(r.ExtractedText) == "" {
		return &ValidationError{Field: "extractedText"}
	}
	if strings.TrimSpace(r.Summary) == "" {
		return &ValidationError{Field: "summary"}
	}
	return nil
}

// UsesSolutionPath reports whether solution steps (rather than real-world
// examples) carry the explanatory content.
func (r Result) UsesSolutionPath() bool {
	t := ParseContentType(string(r.Type))
	return t == ContentMath || t == ContentAptitude
}

// Load decodes a Result from JSON and normalizes it.
func Load(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}
	return res.Normalize(), nil
}

// LoadFile reads a Result from a JSON file.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open analysis: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
