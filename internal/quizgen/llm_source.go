package quizgen

import (
	"context"
	"fmt"

	"github.com/abhisek/snapquiz/internal/analysis"
	"github.com/abhisek/snapquiz/internal/llm"
)

// Purpose labels quiz generation calls in the LLM audit log.
const Purpose = "quiz-gen"

// LLMSource implements QuestionSource using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// NewLLMSource creates an LLMSource with the given provider and config.
func NewLLMSource(provider llm.Provider, cfg Config) *LLMSource {
	return &LLMSource{provider: provider, config: cfg}
}

// GenerateQuestions asks the model for count questions in one request.
func (s *LLMSource) GenerateQuestions(ctx context.Context, a analysis.Result, count int) ([]Candidate, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(a, count, s.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	cands, err := ParseQuestions(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return cands, nil
}

type unavailableSource struct{ err error }

// Unavailable returns a source that fails every request with err. It
// stands in when no LLM provider is configured so reads still work.
func Unavailable(err error) QuestionSource {
	return unavailableSource{err: err}
}

func (s unavailableSource) GenerateQuestions(context.Context, analysis.Result, int) ([]Candidate, error) {
	return nil, s.err
}
