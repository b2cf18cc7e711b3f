package admit_booking

import (
	"time"
)

// Request carries an admission request for (slot, date) on behalf of a
// booker. Exactly one of UserID / NewClientID must be set; staff-initiated
// bookings set IsStaffBooking, the acting StaffID and usually NewClientID.
type Request struct {
	UserID         *int64
	NewClientID    *int64
	SlotID         int64
	Date           time.Time
	Note           *string
	IsStaffBooking bool
	StaffID        *int64
}

// Response is the admitted booking.
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
