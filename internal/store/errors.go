package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError is the blocking error class: the request was understood
// but violates a business rule, and no state was changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err belongs to the blocking validation class.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
