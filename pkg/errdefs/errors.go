package errdefs

import "errors"

var (
	// ErrNotFound signals that the requested pattern, recipe or reference doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter signals that the user input is invalid, like an operand
	// of an unsupported type or a malformed recipe step.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConflict signals that the requested action conflicts with the current
	// state, like a recipe referencing itself.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyExists signals that a resource with the same name is already registered.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnsupported indicates that the action was not supported.
	ErrUnsupported = errors.New("unsupported")
)
