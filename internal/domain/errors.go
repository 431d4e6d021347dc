package domain

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/docent/internal/model"
)

var (
	// ErrBlocked is wrapped by every GuardError.
	ErrBlocked = errors.New("transition blocked")
	// ErrUnknownAction is returned for actions the tutorial does not handle.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnknownFile is returned when a file id is not in the catalog.
	ErrUnknownFile = errors.New("unknown file")
)

// GuardError reports an action whose precondition did not hold. The session is
// left unchanged.
type GuardError struct {
	Action string
	Stage  m.Stage
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s blocked in %s: %s", e.Action, e.Stage, e.Reason)
}

// Unwrap lets callers match any guard failure with errors.Is(err, ErrBlocked).
func (e *GuardError) Unwrap() error {
	return ErrBlocked
}

func blocked(action Action, stage m.Stage, format string, args ...interface{}) error {
	return &GuardError{
		Action: action.Name(),
		Stage:  stage,
		Reason: fmt.Sprintf(format, args...),
	}
}
