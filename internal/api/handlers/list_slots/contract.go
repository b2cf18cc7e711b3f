package list_slots

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/service/slots/models"
)

type SlotService interface {
	ListActive(ctx context.Context) ([]*models.SlotResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
