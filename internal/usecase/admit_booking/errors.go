package admit_booking

import "errors"

var (
	// ErrSlotNotFound is returned when the requested slot does not exist.
	ErrSlotNotFound = errors.New("admit_booking: slot not found")

	// ErrSlotInactive is returned when the slot is disabled for booking.
	ErrSlotInactive = errors.New("admit_booking: slot is not active")

	// ErrUserNotFound is returned when the booker reference does not resolve.
	ErrUserNotFound = errors.New("admit_booking: user not found")

	// ErrStaffNotFound is returned when the acting staff reference does not
	// resolve.
	ErrStaffNotFound = errors.New("admit_booking: staff member not found")

	// ErrSlotFull is returned when the slot has no remaining capacity on the
	// requested date at commit time.
	ErrSlotFull = errors.New("admit_booking: slot capacity exceeded")

	// ErrDuplicateBooking is returned when the booker already holds a
	// non-cancelled booking on the requested date.
	ErrDuplicateBooking = errors.New("admit_booking: booker already has an active booking on this date")

	// ErrDateOutsideWindow is returned when the date is outside the allowed
	// booking window (today through the end of next month).
	ErrDateOutsideWindow = errors.New("admit_booking: date outside booking window")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("admit_booking: invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("admit_booking: internal error")
)
