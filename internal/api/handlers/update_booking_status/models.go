package update_booking_status

import (
	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

// UpdateBookingStatusRequest HTTP request model. Status is a visit
// outcome, "visited" or "no_show".
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest converts the HTTP request into the service model.
func (r *UpdateBookingStatusRequest) ToServiceRequest(caller models.Caller) *models.RecordOutcomeRequest {
	return &models.RecordOutcomeRequest{
		Caller: caller,
		Status: r.Status,
	}
}
