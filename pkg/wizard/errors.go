package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrStepOutOfRange = errors.New("wizard: step out of range")
	ErrNoRecipients   = errors.New("wizard: add at least one recipient")
	ErrMissingContent = errors.New("wizard: subject and message are required")
	ErrSessionExpired = errors.New("wizard: session expired, log in again")
	ErrNoDispatcher   = errors.New("wizard: no dispatcher configured")
	ErrSendInProgress = errors.New("wizard: a send is already in progress")
	ErrTemplateLookup = errors.New("wizard: template lookup failed")
)

// TransitionRejectedError is returned when a guard blocks a transition,
// typically Next on a step whose requirements are not met.
type TransitionRejectedError struct {
	Step  Step
	Event Event
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("wizard: %s from step %d rejected: step requirements not met", e.Event, e.Step)
}

// NoTransitionError is returned when the event has no transition from the
// current step, e.g. Next on the review step.
type NoTransitionError struct {
	Step  Step
	Event Event
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("wizard: no %s transition from step %d", e.Event, e.Step)
}

// SendError is a rejected or failed dispatch. Message is what the user sees:
// the server-provided message when there is one.
type SendError struct {
	Message string
	Err     error
}

func (e *SendError) Error() string {
	return "wizard: send failed: " + e.Message
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// IsTransitionRejected reports whether err is a *TransitionRejectedError.
func IsTransitionRejected(err error) bool {
	var e *TransitionRejectedError
	return errors.As(err, &e)
}

// IsNoTransition reports whether err is a *NoTransitionError.
func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}
