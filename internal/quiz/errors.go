package quiz

import (
	"errors"
	"fmt"
)

// Sentinel errors for the command boundary. All four are recoverable:
// the engine renders them to the user and the session continues.
var (
	// ErrMissingArgument indicates a required <id> parameter was not supplied.
	ErrMissingArgument = errors.New("missing <id> parameter")

	// ErrInvalidArgument indicates the <id> parameter is not a valid integer.
	ErrInvalidArgument = errors.New("the <id> parameter is not a number")

	// ErrNotFound indicates no record exists for the given id.
	ErrNotFound = errors.New("record not found")

	// ErrValidation indicates the store rejected a create or update.
	ErrValidation = errors.New("validation failed")
)

type notFoundError struct {
	id int
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("no quiz found for id = %d", e.id)
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFoundError reports that no record exists for id.
// Matches ErrNotFound under errors.Is.
func NotFoundError(id int) error {
	return &notFoundError{id: id}
}

// IsRecoverable reports whether an error should be rendered to the user
// and the session continued, as opposed to a persistence failure that is
// fatal to the process.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation)
}
