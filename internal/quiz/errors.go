package quiz

import "fmt"

// ErrGenerationFailed indicates the AI collaborator failed or produced no
// usable questions. Nothing was persisted.
type ErrGenerationFailed struct {
	Err error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("quiz generation failed: %v", e.Err)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Err }

// ErrInvalidAnswerReference indicates a submission referenced a question
// that does not belong to the quiz.
type ErrInvalidAnswerReference struct {
	QuizID     string
	QuestionID string
}

func (e *ErrInvalidAnswerReference) Error() string {
	return fmt.Sprintf("question %q does not belong to quiz %q", e.QuestionID, e.QuizID)
}

// ErrInvalidSelection indicates a selected option outside -1..3.
type ErrInvalidSelection struct {
	QuestionID string
	Selected   int
}

func (e *ErrInvalidSelection) Error() string {
	return fmt.Sprintf("invalid selection %d for question %q", e.Selected, e.QuestionID)
}

// ErrPersistence indicates a storage read or write failed. Writes are
// transactional, so a failed write leaves no partial state behind.
type ErrPersistence struct {
	Op  string
	Err error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error { return e.Err }

// ErrNotFound indicates a quiz or attempt does not exist for the caller.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
