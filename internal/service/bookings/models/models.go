package models

import (
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// Caller identifies who is performing a booking operation: a self-service
// user (X-User-ID) and/or a staff member (X-Staff-ID). Staff may act on any
// booking; users only on their own.
type Caller struct {
	UserID  *int64
	StaffID *int64
}

// IsStaff reports whether the caller acts with staff privileges.
func (c Caller) IsStaff() bool {
	return c.StaffID != nil
}

// GetUserBookingsRequest asks for a user's booking history.
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
}

// RecordOutcomeRequest records a post-visit outcome on a booking.
type RecordOutcomeRequest struct {
	Caller Caller
	Status string // "no_show" or "visited"
}

// BookingResponse is the booking DTO returned by the service.
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	NewClientID     *int64  `json:"newClientId,omitempty"`
	SlotID          int64   `json:"slotId"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Status          string  `json:"status"`
	RescheduleToken *string `json:"rescheduleToken,omitempty"`
	Note            *string `json:"note,omitempty"`
	IsStaffBooking  bool    `json:"isStaffBooking"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is a list of booking DTOs.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a domain booking to its DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		NewClientID:     b.NewClientID,
		SlotID:          b.SlotID,
		Date:            b.Date.Format(domain.DateFormat),
		Status:          string(b.Status),
		RescheduleToken: b.RescheduleToken,
		Note:            b.Note,
		IsStaffBooking:  b.IsStaffBooking,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts a slice of domain bookings to DTOs.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}

	return resp
}
