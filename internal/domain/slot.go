package domain

import (
	"time"

	"github.com/pantrydesk/booking-service/pkg/types"
)

// Slot is a fixed time window clients can book appointments into.
// Slots are reference data administered by staff; the same slot row serves
// every calendar date.
type Slot struct {
	ID          int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	MaxCapacity int
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotAvailability is a slot together with its booked count on a given date.
type SlotAvailability struct {
	Slot        Slot
	BookedCount int
}

// AvailableSpots returns the remaining capacity, never negative.
func (a *SlotAvailability) AvailableSpots() int {
	remaining := a.Slot.MaxCapacity - a.BookedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull reports whether the slot has no remaining capacity on the date.
func (a *SlotAvailability) IsFull() bool {
	return a.AvailableSpots() == 0
}
