package slots

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// SlotRepository is the slots storage interface used by the service.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListActive(ctx context.Context) ([]*domain.Slot, error)
	Update(ctx context.Context, id int64, s *domain.Slot) (*domain.Slot, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
