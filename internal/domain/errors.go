package domain

import (
	"errors"
	"fmt"
)

var (
	// Location provider failed, timed out or was denied. Recovered by the fallback coordinate.
	ErrLocationUnavailable = errors.New("location unavailable")
	// No location provider is configured at all.
	ErrLocationUnsupported = fmt.Errorf("%w: no location provider", ErrLocationUnavailable)

	ErrEmptyCandidateSet = errors.New("empty candidate set")
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	ErrInvalidTransition = errors.New("invalid transition")
	ErrIncompleteState   = errors.New("incomplete answer state")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrUnknownOption     = errors.New("unknown option")
	// An answer was submitted while the previous one is still being acknowledged.
	ErrFlowBusy = errors.New("question flow busy")
)

// TransitionError describes an answer rejected by the question flow.
// It unwraps to ErrInvalidTransition.
type TransitionError struct {
	Expected QuestionID // empty when the flow is complete
	Got      QuestionID
}

func (e *TransitionError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%v: flow is complete, got answer for %q", ErrInvalidTransition, e.Got)
	}
	return fmt.Sprintf("%v: expected answer for %q, got %q", ErrInvalidTransition, e.Expected, e.Got)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
