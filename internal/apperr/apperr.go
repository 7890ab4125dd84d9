// Package apperr defines the error taxonomy shared by the portal core.
// Validation and authorization failures short-circuit to the caller; store
// failures on primary writes propagate wrapped; secondary fan-out failures
// are logged and swallowed at the call site.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotAuthorized means there is no viewer identity or the viewer lacks
// ownership/admin rights for the mutation.
var ErrNotAuthorized = errors.New("not authorized")

// ErrNotFound is returned when the requested entity does not exist or is
// out of the viewer's scope.
var ErrNotFound = errors.New("not found")

// ValidationError reports an ambiguous or disallowed input combination,
// such as creating a folder in an unresolved silo.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a failed persistence operation on a primary entity row.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
