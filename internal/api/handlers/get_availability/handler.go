package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/domain"
	getAvailability "github.com/pantrydesk/booking-service/internal/usecase/get_availability"
)

const (
	msgMissingDate       = "date query parameter is required"
	msgInvalidDate       = "invalid date, expected YYYY-MM-DD"
	msgDateOutsideWindow = "date is outside the booking window"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrDateOutsideWindow):
			h.logger.Warn("GET /slots/availability - Date outside window: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /slots/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots/availability - Failed to get availability: date=%s, error=%v",
				dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/availability - Availability retrieved: date=%s, slots=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
