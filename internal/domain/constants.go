package domain

import "time"

// Time format constants.
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants.
const (
	MinSlotCapacity = 1
	MaxSlotCapacity = 200
	MaxNoteLength   = 500
)

// BookingWindowEnd returns the last date bookings are accepted for:
// the end of the calendar month following now's month.
func BookingWindowEnd(now time.Time) time.Time {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	// First day of the month after next, minus one day.
	return firstOfMonth.AddDate(0, 2, 0).AddDate(0, 0, -1)
}

// InBookingWindow reports whether date falls between today and the end of
// the next calendar month, inclusive.
func InBookingWindow(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(today) {
		return false
	}
	return !dateOnly.After(BookingWindowEnd(now))
}
