package cancel_booking

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id int64, caller models.Caller) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
