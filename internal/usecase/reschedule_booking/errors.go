package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound is returned when neither the token nor the id
	// resolves to a booking.
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable is returned when the booking is in a terminal state.
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotNotFound is returned when the destination slot does not exist.
	ErrSlotNotFound = errors.New("reschedule_booking: destination slot not found")

	// ErrSlotInactive is returned when the destination slot is disabled.
	ErrSlotInactive = errors.New("reschedule_booking: destination slot is not active")

	// ErrSlotFull is returned when the destination has no remaining capacity.
	// The original booking is left unchanged.
	ErrSlotFull = errors.New("reschedule_booking: destination slot capacity exceeded")

	// ErrDuplicateBooking is returned when the booker already holds another
	// active booking on the destination date.
	ErrDuplicateBooking = errors.New("reschedule_booking: booker already has an active booking on the destination date")

	// ErrDateOutsideWindow is returned when the destination date is outside
	// the allowed booking window.
	ErrDateOutsideWindow = errors.New("reschedule_booking: date outside booking window")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("reschedule_booking: internal error")
)
