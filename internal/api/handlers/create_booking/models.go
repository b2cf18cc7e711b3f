package create_booking

import (
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
	admitBooking "github.com/pantrydesk/booking-service/internal/usecase/admit_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID int64   `json:"slotId"`
	Date   string  `json:"date"` // "2026-09-15"
	Note   *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	NewClientID     *int64  `json:"newClientId,omitempty"`
	SlotID          int64   `json:"slotId"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	RescheduleToken *string `json:"rescheduleToken,omitempty"`
	Note            *string `json:"note,omitempty"`
	IsStaffBooking  bool    `json:"isStaffBooking"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*admitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &admitBooking.Request{
		UserID: &userID,
		SlotID: r.SlotID,
		Date:   date,
		Note:   r.Note,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *admitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		NewClientID:     resp.NewClientID,
		SlotID:          resp.SlotID,
		Date:            resp.Date.Format(domain.DateFormat),
		Status:          resp.Status,
		RescheduleToken: resp.RescheduleToken,
		Note:            resp.Note,
		IsStaffBooking:  resp.IsStaffBooking,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
