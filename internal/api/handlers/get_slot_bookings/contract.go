package get_slot_bookings

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/domain"
	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetSlotBookings(ctx context.Context, filter domain.SlotBookingsFilter, caller models.Caller) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
