// Package finance holds the mortgage and valuation calculators behind the
// landing page widgets. Everything here is pure: no I/O and no shared state.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every calculator input error.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the rejected field so the form can highlight it.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
