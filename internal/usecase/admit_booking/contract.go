package admit_booking

import (
	"context"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
	"github.com/pantrydesk/booking-service/internal/integrations/profileservice"
)

// BookingRepository is the bookings storage interface used by the use case.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CountActiveBySlotDate(ctx context.Context, slotID int64, date time.Time, excludeID *int64) (int, error)
}

// SlotRepository is the slots storage interface used by the use case.
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
}

// ProfileServiceClient resolves booker and staff references.
type ProfileServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*profileservice.ClientProfile, error)
	GetStaffMember(ctx context.Context, staffID int64) (*profileservice.StaffMember, error)
}

// NotificationPublisher sends best-effort post-commit notifications.
type NotificationPublisher interface {
	BookingConfirmed(b *domain.Booking, slot *domain.Slot)
}

// TransactionManager runs the admission check and insert as one atomic unit.
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
