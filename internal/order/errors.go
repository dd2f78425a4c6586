package order

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrDuplicateEmail    = errors.New("customer email already exists")
	ErrOrderNumberTaken  = errors.New("order number already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError lists every problem found in a request before any write.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(p string) { e.Problems = append(e.Problems, p) }

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
