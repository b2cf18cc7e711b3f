package cancel_by_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/service/bookings"
)

const (
	msgNotFound     = "booking not found"
	msgCannotCancel = "booking can no longer be cancelled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel/{token}
//
// Token-authorized cancellation for the no-login email flow.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/cancel/{token} - Booking not found for token")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/cancel/{token} - Booking cannot be cancelled")
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/cancel/{token} - Failed to cancel booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel/{token} - Booking cancelled via token")
	handlers.RespondJSON(w, http.StatusOK, nil)
}
