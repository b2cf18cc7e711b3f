package reschedule_booking

import (
	"context"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// BookingRepository is the bookings storage interface used by the use case.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRescheduleToken(ctx context.Context, token string) (*domain.Booking, error)
	CountActiveBySlotDate(ctx context.Context, slotID int64, date time.Time, excludeID *int64) (int, error)
	Move(ctx context.Context, id int64, slotID int64, date time.Time, newToken string) error
}

// SlotRepository is the slots storage interface used by the use case.
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
}

// NotificationPublisher sends best-effort post-commit notifications.
type NotificationPublisher interface {
	BookingRescheduled(b *domain.Booking, slot *domain.Slot)
}

// TransactionManager runs the move and its capacity check atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (overridable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case.
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
