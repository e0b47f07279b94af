// internal/curve/errors.go
package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for NaN, infinite or negative supply queries.
	ErrInvalidInput = errors.New("invalid supply")
	// ErrDegenerateTable is returned when a table has fewer than two points.
	ErrDegenerateTable = errors.New("curve table needs at least 2 points")
	// ErrInvalidPoint is returned for samples with NaN, infinite or negative values.
	ErrInvalidPoint = errors.New("invalid curve point")
	// ErrDuplicateSupply is returned when two samples share a supply value.
	ErrDuplicateSupply = errors.New("duplicate supply in curve table")
)

// InputError describes a rejected supply query.
type InputError struct {
	Supply float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v (must be finite and non-negative)", ErrInvalidInput.Error(), e.Supply)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
