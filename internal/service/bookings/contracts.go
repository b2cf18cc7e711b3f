package bookings

import (
	"context"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// BookingRepository is the bookings storage interface used by the service.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRescheduleToken(ctx context.Context, token string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySlotAndDate(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SlotRepository is the slots storage interface used by the service.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// NotificationPublisher sends best-effort post-commit notifications.
type NotificationPublisher interface {
	BookingCancelled(b *domain.Booking, slot *domain.Slot)
}

// TimeProvider supplies the current time (overridable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
