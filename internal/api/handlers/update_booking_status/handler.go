package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgForbidden          = "access denied"
	msgInvalidOutcome     = "status must be visited or no_show"
	msgOutcomeTooEarly    = "outcome cannot be recorded before the visit date"
	msgNotTransitionable  = "booking is already in a final state"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	caller := handlers.CallerFromContext(r.Context())

	err = h.service.RecordOutcome(r.Context(), bookingID, req.ToServiceRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidOutcome):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid outcome %q: booking_id=%d", req.Status, bookingID)
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		case errors.Is(err, bookings.ErrOutcomeTooEarly):
			h.logger.Warn("PATCH /bookings/{id}/status - Outcome too early: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutcomeTooEarly)

		case errors.Is(err, bookings.ErrNotTransitionable):
			h.logger.Warn("PATCH /bookings/{id}/status - Not transitionable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotTransitionable)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to record outcome: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Outcome recorded: booking_id=%d, status=%s",
		bookingID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
