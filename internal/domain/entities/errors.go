package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session lifecycle errors
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrInvalidState      = errors.New("invalid session state")
	ErrInvalidEvent      = errors.New("invalid session event")

	// Input errors
	ErrInvalidMeetingType = errors.New("invalid meeting type")
	ErrInvalidParticipant = errors.New("invalid participant")
)

// TransitionError describes a lifecycle operation rejected in the session's current status
type TransitionError struct {
	Op   string
	From SessionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a session that is %s", e.Op, e.From)
}

// Unwrap lets errors.Is match ErrInvalidTransition
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func invalidTransition(op string, from SessionStatus) error {
	return &TransitionError{Op: op, From: from}
}
