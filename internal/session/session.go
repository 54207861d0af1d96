package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/snapquiz/internal/quiz"
)

// ErrNoQuestions is returned when loading a quiz without questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// SubmitRequest is what the session hands to the grader.
type SubmitRequest struct {
	QuizID           string
	Answers          []quiz.Answer
	TimeTakenSeconds int
}

// QuizSession is the state of one pass through a quiz. It is not safe for
// concurrent use; the owning UI drives it from a single goroutine.
type QuizSession struct {
	clock Clock
	phase Phase

	quiz      *quiz.Quiz
	questions []quiz.Question
	index     int

	// selections maps question ID to the chosen option. Unanswered
	// questions are absent.
	selections map[string]int

	startedAt time.Time
	elapsed   time.Duration // frozen at submit

	attempt *quiz.Attempt
	err     error
}

// New returns a session in the Loading phase. A nil clock uses time.Now.
func New(clock Clock) *QuizSession {
	if clock == nil {
		clock = time.Now
	}
	return &QuizSession{
		clock:      clock,
		phase:      PhaseLoading,
		selections: make(map[string]int),
	}
}

// Load supplies the quiz and moves Loading to Ready.
func (s *QuizSession) Load(q *quiz.Quiz, questions []quiz.Question) error {
	if s.phase != PhaseLoading {
		return s.invalid("load")
	}
	if q == nil || len(questions) == 0 {
		return ErrNoQuestions
	}
	s.quiz = q
	s.questions = questions
	s.index = 0
	s.phase = PhaseReady
	return nil
}

// Start moves Ready to InProgress and starts the timer. Selecting or
// navigating while Ready starts the session implicitly.
func (s *QuizSession) Start() error {
	if s.phase != PhaseReady {
		return s.invalid("start")
	}
	s.startedAt = s.clock()
	s.phase = PhaseInProgress
	return nil
}

// ensureStarted performs the implicit Ready to InProgress transition.
func (s *QuizSession) ensureStarted(action string) error {
	switch s.phase {
	case PhaseReady:
		return s.Start()
	case PhaseInProgress:
		return nil
	default:
		return s.invalid(action)
	}
}

// Select records option for the current question, replacing any earlier
// choice. quiz.Unanswered clears the selection.
func (s *QuizSession) Select(option int) error {
	if err := s.ensureStarted("select"); err != nil {
		return err
	}
	return s.selectFor(s.questions[s.index].ID, option)
}

// SelectFor records option for the question with the given ID.
func (s *QuizSession) SelectFor(questionID string, option int) error {
	if err := s.ensureStarted("select"); err != nil {
		return err
	}
	if s.position(questionID) < 0 {
		return &quiz.ErrInvalidAnswerReference{QuizID: s.quiz.ID, QuestionID: questionID}
	}
	return s.selectFor(questionID, option)
}

func (s *QuizSession) selectFor(questionID string, option int) error {
	if !quiz.ValidSelection(option) {
		return &quiz.ErrInvalidSelection{QuestionID: questionID, Selected: option}
	}
	if option == quiz.Unanswered {
		delete(s.selections, questionID)
		return nil
	}
	s.selections[questionID] = option
	return nil
}

// Next moves to the following question. It stays put on the last one.
func (s *QuizSession) Next() error {
	return s.Goto(min(s.index+1, len(s.questions)-1))
}

// Prev moves to the preceding question. It stays put on the first one.
func (s *QuizSession) Prev() error {
	return s.Goto(max(s.index-1, 0))
}

// Goto jumps to question i. Questions can be visited in any order.
func (s *QuizSession) Goto(i int) error {
	if err := s.ensureStarted("navigate"); err != nil {
		return err
	}
	if i < 0 || i >= len(s.questions) {
		return fmt.Errorf("question index %d out of range 0-%d", i, len(s.questions)-1)
	}
	s.index = i
	return nil
}

// Submit stops the timer and moves to Submitting. It is allowed from any
// question, and from Failed as a retry. Every unanswered question is
// reported with quiz.Unanswered.
func (s *QuizSession) Submit() (SubmitRequest, error) {
	switch s.phase {
	case PhaseReady:
		if err := s.Start(); err != nil {
			return SubmitRequest{}, err
		}
	case PhaseInProgress, PhaseFailed:
	default:
		return SubmitRequest{}, s.invalid("submit")
	}

	s.elapsed = s.clock().Sub(s.startedAt)
	if s.elapsed < 0 {
		s.elapsed = 0
	}
	s.err = nil
	s.phase = PhaseSubmitting

	answers := make([]quiz.Answer, len(s.questions))
	for i, q := range s.questions {
		answers[i] = quiz.Answer{QuestionID: q.ID, Selected: s.Selection(i)}
	}
	return SubmitRequest{
		QuizID:           s.quiz.ID,
		Answers:          answers,
		TimeTakenSeconds: int(s.elapsed / time.Second),
	}, nil
}

// Complete records the graded attempt and moves Submitting to Submitted.
func (s *QuizSession) Complete(a *quiz.Attempt) error {
	if s.phase != PhaseSubmitting {
		return s.invalid("complete")
	}
	s.attempt = a
	s.phase = PhaseSubmitted
	return nil
}

// Fail moves Submitting to Failed. Selections are kept.
func (s *QuizSession) Fail(err error) error {
	if s.phase != PhaseSubmitting {
		return s.invalid("fail")
	}
	s.err = err
	s.phase = PhaseFailed
	return nil
}

// Resume returns a failed session to InProgress so the user can adjust
// answers and submit again. The timer keeps its original start.
func (s *QuizSession) Resume() error {
	if s.phase != PhaseFailed {
		return s.invalid("resume")
	}
	s.phase = PhaseInProgress
	return nil
}

// Cancel abandons the session and discards all selections.
func (s *QuizSession) Cancel() error {
	switch s.phase {
	case PhaseSubmitting, PhaseSubmitted, PhaseCancelled:
		return s.invalid("cancel")
	}
	clear(s.selections)
	s.phase = PhaseCancelled
	return nil
}

func (s *QuizSession) invalid(action string) error {
	return &ErrInvalidTransition{Phase: s.phase, Action: action}
}

func (s *QuizSession) position(questionID string) int {
	for i, q := range s.questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

// Phase returns the current phase.
func (s *QuizSession) Phase() Phase { return s.phase }

// Quiz returns the loaded quiz, or nil while Loading.
func (s *QuizSession) Quiz() *quiz.Quiz { return s.quiz }

// Questions returns the loaded questions in order.
func (s *QuizSession) Questions() []quiz.Question { return s.questions }

// Attempt returns the graded attempt once Submitted.
func (s *QuizSession) Attempt() *quiz.Attempt { return s.attempt }

// Err returns the error from the last failed submission.
func (s *QuizSession) Err() error { return s.err }

// Index returns the position of the current question.
func (s *QuizSession) Index() int { return s.index }

// Current returns the current question, or nil while Loading.
func (s *QuizSession) Current() *quiz.Question {
	if len(s.questions) == 0 {
		return nil
	}
	return &s.questions[s.index]
}

// Selection returns the option chosen for question i, or quiz.Unanswered.
func (s *QuizSession) Selection(i int) int {
	if i < 0 || i >= len(s.questions) {
		return quiz.Unanswered
	}
	if opt, ok := s.selections[s.questions[i].ID]; ok {
		return opt
	}
	return quiz.Unanswered
}

// AnsweredCount returns how many questions have a selection.
func (s *QuizSession) AnsweredCount() int { return len(s.selections) }

// IsLast reports whether the current question is the last one.
func (s *QuizSession) IsLast() bool {
	return len(s.questions) > 0 && s.index == len(s.questions)-1
}

// Elapsed returns the time since Start while answering, and the frozen
// duration once submitted.
func (s *QuizSession) Elapsed() time.Duration {
	switch s.phase {
	case PhaseInProgress:
		return s.clock().Sub(s.startedAt)
	case PhaseSubmitting, PhaseSubmitted, PhaseFailed:
		return s.elapsed
	}
	return 0
}
