package quizgen

import (
	"encoding/json"

	"github.com/abhisek/snapquiz/internal/llm"
)

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of multiple-choice questions testing understanding of the analyzed content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The quiz questions in the order they should be asked",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly 4 answer options, exactly one of them correct",
						},
						"correct_option": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in one or two sentences",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{"easy", "medium", "hard"},
							"description": "Self-assessed difficulty of the question",
						},
					},
					"required":             []any{"question", "options", "correct_option", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []Candidate `json:"questions"`
}

// ParseQuestions decodes a response body shaped by QuizSchema. The
// candidates are returned unvalidated.
func ParseQuestions(body []byte) ([]Candidate, error) {
	var raw quizOutput
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw.Questions, nil
}
