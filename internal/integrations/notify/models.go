package notify

import (
	"time"
)

// Event types consumed by the notification workers.
const (
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingCancelled   = "booking.cancelled"
)

// EmailJob is the payload pushed onto the email queue. The notification
// worker resolves the recipient address from the booker reference and
// renders the message, including the reschedule link built from the token.
type EmailJob struct {
	Event           string    `json:"event"`
	BookingID       int64     `json:"bookingId"`
	UserID          *int64    `json:"userId,omitempty"`
	NewClientID     *int64    `json:"newClientId,omitempty"`
	SlotID          int64     `json:"slotId"`
	Date            string    `json:"date"` // YYYY-MM-DD
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	RescheduleToken *string   `json:"rescheduleToken,omitempty"`
	EnqueuedAt      time.Time `json:"enqueuedAt"`
}

// PushJob is the payload pushed onto the push queue, one per registered
// device of the booking's user. Walk-in clients have no devices.
type PushJob struct {
	Event      string    `json:"event"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	DeviceID   string    `json:"deviceId"`
	Token      string    `json:"token"`
	Date       string    `json:"date"` // YYYY-MM-DD
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}
