package get_availability

import (
	"context"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// BookingRepository is the bookings storage interface used by the use case.
type BookingRepository interface {
	GetActiveCountsByDate(ctx context.Context, date time.Time) (map[int64]int, error)
}

// SlotRepository is the slots storage interface used by the use case.
type SlotRepository interface {
	ListActive(ctx context.Context) ([]*domain.Slot, error)
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
