package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the caller may not act on the booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is already terminal.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidOutcome is returned when the requested status is not a
	// recordable outcome (no_show, visited).
	ErrInvalidOutcome = errors.New("invalid booking outcome")

	// ErrOutcomeTooEarly is returned on an attempt to record an outcome
	// before the booking's date has passed.
	ErrOutcomeTooEarly = errors.New("outcome cannot be recorded before the booking date")

	// ErrNotTransitionable is returned when the booking is already in a
	// terminal state and cannot receive an outcome.
	ErrNotTransitionable = errors.New("booking is already in a terminal state")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("bookings service: internal error")
)
