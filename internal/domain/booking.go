package domain

import (
	"time"
)

// BookingStatus represents the status of a booking.
// The set is closed: a booking starts approved and ends in exactly one of
// the terminal states. Historical statuses (pending, submitted, rejected,
// expired) were folded into this set by schema migration.
type BookingStatus string

const (
	StatusApproved  BookingStatus = "approved"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
	StatusVisited   BookingStatus = "visited"
)

// ValidStatuses enumerates every value accepted by the bookings_status_check
// constraint.
var ValidStatuses = []BookingStatus{
	StatusApproved,
	StatusCancelled,
	StatusNoShow,
	StatusVisited,
}

// OutcomeStatuses enumerates the post-visit outcomes staff may record.
var OutcomeStatuses = []BookingStatus{
	StatusNoShow,
	StatusVisited,
}

// IsValidStatus reports whether s is one of the allowed status values.
func IsValidStatus(s BookingStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsOutcomeStatus reports whether s is a recordable post-visit outcome.
func IsOutcomeStatus(s BookingStatus) bool {
	for _, v := range OutcomeStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// BookerRef identifies the owner of a booking: exactly one of a self-service
// user or a staff-entered client. The two are separate columns in the store.
type BookerRef struct {
	UserID      *int64
	NewClientID *int64
}

// IsValid reports whether exactly one reference is set.
func (r BookerRef) IsValid() bool {
	return (r.UserID != nil) != (r.NewClientID != nil)
}

// Booking represents a reservation of one unit of a slot's capacity for a
// booker on a specific date.
type Booking struct {
	ID              int64
	UserID          *int64 // self-service client, mutually exclusive with NewClientID
	NewClientID     *int64 // staff-entered client
	SlotID          int64
	Date            time.Time
	Status          BookingStatus
	RescheduleToken *string
	Note            *string
	IsStaffBooking  bool

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booker returns the owner reference of the booking.
func (b *Booking) Booker() BookerRef {
	return BookerRef{UserID: b.UserID, NewClientID: b.NewClientID}
}

// CountsTowardCapacity reports whether the booking consumes a unit of its
// slot's capacity. Only cancelled bookings release capacity; no_show and
// visited stay counted because their date has already passed.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status != StatusCancelled
}

// IsTerminal reports whether the booking is in a state it cannot leave.
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusApproved
}

// CanBeCancelled reports whether the booking may transition to cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusApproved
}

// CanBeRescheduled reports whether the booking may be moved to another
// slot or date.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusApproved
}

// CanRecordOutcome reports whether the booking may receive a post-visit
// outcome (no_show or visited).
func (b *Booking) CanRecordOutcome() bool {
	return b.Status == StatusApproved
}

// OwnedByUser reports whether the booking belongs to the given self-service user.
func (b *Booking) OwnedByUser(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// SlotBookingsFilter carries the options for listing the bookings of a slot.
type SlotBookingsFilter struct {
	SlotID          int64
	Date            time.Time
	IncludeInactive bool // include cancelled bookings
}
