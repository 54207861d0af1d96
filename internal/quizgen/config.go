package quizgen

import (
	"os"
	"strconv"
)

// Config controls quiz generation.
type Config struct {
	// Validators run in order on every candidate; the first failure
	// drops the candidate.
	Validators []Validator

	// QuestionCount is how many questions to request per quiz.
	QuestionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxSourceChars caps how much extracted text goes into the prompt.
	MaxSourceChars int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
		QuestionCount:  5,
		MaxTokens:      4096,
		Temperature:    0.7,
		MaxSourceChars: 6000,
	}
}

// ConfigFromEnv applies SNAPQUIZ_QUESTION_COUNT on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if n, err := strconv.Atoi(os.Getenv("SNAPQUIZ_QUESTION_COUNT")); err == nil && n > 0 && n <= 20 {
		cfg.QuestionCount = n
	}
	return cfg
}
