package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/snapquiz/internal/quiz"
)

const (
	maxQuestionLen    = 500
	maxOptionLen      = 200
	maxExplanationLen = 1000
)

// StructuralValidator checks required fields, lengths, the option count,
// the correct-option range and the difficulty enum.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Candidate) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	text := strings.TrimSpace(c.Text)
	switch {
	case text == "":
		return fail("question is empty")
	case len(text) > maxQuestionLen:
		return fail("question exceeds %d characters", maxQuestionLen)
	case len(c.Options) != quiz.NumOptions:
		return fail("expected %d options, got %d", quiz.NumOptions, len(c.Options))
	case c.CorrectOption < 0 || c.CorrectOption >= quiz.NumOptions:
		return fail("correct_option %d out of range", c.CorrectOption)
	case strings.TrimSpace(c.Explanation) == "":
		return fail("explanation is empty")
	case len(c.Explanation) > maxExplanationLen:
		return fail("explanation exceeds %d characters", maxExplanationLen)
	case !quiz.Difficulty(strings.ToLower(c.Difficulty)).Valid():
		return fail("unknown difficulty %q", c.Difficulty)
	}
	for i, opt := range c.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return fail("option %d is empty", i)
		}
		if len(opt) > maxOptionLen {
			return fail("option %d exceeds %d characters", i, maxOptionLen)
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat, which
// would make more than one option indistinguishable from the answer.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(c *Candidate) *ValidationError {
	seen := make(map[string]int, len(c.Options))
	for i, opt := range c.Options {
		key := normalize(opt)
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("options %d and %d are identical", j, i),
			}
		}
		seen[key] = i
	}
	return nil
}
