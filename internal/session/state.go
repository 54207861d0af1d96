// Package session tracks a single user's pass through a quiz, from loading
// the questions to a graded attempt. It has no UI dependencies.
package session

import (
	"fmt"
	"time"
)

// Phase is the current phase of a quiz session.
type Phase int

const (
	PhaseLoading    Phase = iota // Questions being generated or fetched
	PhaseReady                   // Questions loaded, timer not started
	PhaseInProgress              // Answering; timer running
	PhaseSubmitting              // Submission sent, awaiting the grade
	PhaseSubmitted               // Graded and stored
	PhaseFailed                  // Submission failed; answers kept for retry
	PhaseCancelled               // Abandoned; nothing recorded
)

var phaseNames = [...]string{
	PhaseLoading:    "loading",
	PhaseReady:      "ready",
	PhaseInProgress: "in_progress",
	PhaseSubmitting: "submitting",
	PhaseSubmitted:  "submitted",
	PhaseFailed:     "failed",
	PhaseCancelled:  "cancelled",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseSubmitted || p == PhaseCancelled
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// ErrInvalidTransition is returned when an action is not allowed in the
// session's current phase.
type ErrInvalidTransition struct {
	Phase  Phase
	Action string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.Phase)
}
