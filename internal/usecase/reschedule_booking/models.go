package reschedule_booking

import (
	"time"
)

// Request identifies the booking to move - by reschedule token for the
// no-login path, by booking id for the staff path - and the destination.
// Exactly one of Token / BookingID must be set.
type Request struct {
	Token     *string
	BookingID *int64

	SlotID int64
	Date   time.Time
}

// Response is the moved booking.
type Response struct {
	ID              int64
	UserID          *int64
	NewClientID     *int64
	SlotID          int64
	Date            time.Time
	Status          string
	RescheduleToken *string
	Note            *string
	IsStaffBooking  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
