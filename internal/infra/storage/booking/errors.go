package booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateActiveBooking is returned when the partial unique index on
	// the booker reference and date rejects an insert or move: the booker
	// already holds a non-cancelled booking on that date.
	ErrDuplicateActiveBooking = errors.New("booking.repository: booker already has an active booking on this date")

	// ErrInvalidStatus is returned on an attempt to persist a status outside
	// the allowed set.
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
