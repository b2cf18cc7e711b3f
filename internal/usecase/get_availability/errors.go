package get_availability

import "errors"

var (
	// ErrDateOutsideWindow is returned when the date is outside the allowed
	// booking window.
	ErrDateOutsideWindow = errors.New("get_availability: date outside booking window")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("get_availability: internal error")
)
