package update_booking_status

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	RecordOutcome(ctx context.Context, id int64, req *models.RecordOutcomeRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
