package reschedule_booking

import (
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
	rescheduleBooking "github.com/pantrydesk/booking-service/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model: the destination slot and date.
type RescheduleBookingRequest struct {
	SlotID int64  `json:"slotId"`
	Date   string `json:"date"` // "2026-09-15"
}

// BookingResponse HTTP response model. The reschedule token is the fresh
// one issued by the move; the link used for this request is dead.
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
func (r *RescheduleBookingRequest) ToUseCaseRequest(token string) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Token:  &token,
		SlotID: r.SlotID,
		Date:   date,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
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
