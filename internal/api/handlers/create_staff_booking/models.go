package create_staff_booking

import (
	"time"

	createBooking "github.com/pantrydesk/booking-service/internal/api/handlers/create_booking"
	"github.com/pantrydesk/booking-service/internal/domain"
	admitBooking "github.com/pantrydesk/booking-service/internal/usecase/admit_booking"
)

// CreateStaffBookingRequest HTTP request model. Exactly one of
// userId / newClientId identifies the booker.
type CreateStaffBookingRequest struct {
	UserID      *int64  `json:"userId,omitempty"`
	NewClientID *int64  `json:"newClientId,omitempty"`
	SlotID      int64   `json:"slotId"`
	Date        string  `json:"date"` // "2026-09-15"
	Note        *string `json:"note,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model. The
// acting staff id comes from the authenticated request, never the body.
func (r *CreateStaffBookingRequest) ToUseCaseRequest(staffID int64) (*admitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &admitBooking.Request{
		UserID:         r.UserID,
		NewClientID:    r.NewClientID,
		SlotID:         r.SlotID,
		Date:           date,
		Note:           r.Note,
		IsStaffBooking: true,
		StaffID:        &staffID,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *admitBooking.Response) *createBooking.BookingResponse {
	return createBooking.FromUseCaseResponse(resp)
}
