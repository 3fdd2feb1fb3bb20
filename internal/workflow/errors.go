package workflow

import "errors"

var (
	// ErrWrongState is a precondition violation: the record's current
	// status is not a valid "from" state for the requested action.
	ErrWrongState = errors.New("record is not in a state that allows this action")

	// ErrForbidden is an authorization violation: the actor lacks the
	// role or permission the transition requires.
	ErrForbidden = errors.New("actor is not allowed to perform this action")

	// ErrNoteRequired is returned when a reject carries an empty or
	// whitespace-only note.
	ErrNoteRequired = errors.New("rejection note is required")

	// ErrNotFound is returned by persistence layers when the target
	// record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownAction is returned for an action outside the transition
	// table.
	ErrUnknownAction = errors.New("unknown workflow action")
)
