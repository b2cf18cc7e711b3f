package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	rescheduleBooking "github.com/pantrydesk/booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgNotFound           = "booking not found"
	msgNotReschedulable   = "booking can no longer be rescheduled"
	msgSlotNotFound       = "destination slot not found"
	msgSlotInactive       = "destination slot is not open for booking"
	msgSlotFull           = "destination slot has no remaining capacity on this date"
	msgDuplicateBooking   = "you already have a booking on the destination date"
	msgDateOutsideWindow  = "date is outside the booking window"
	msgInvalidInput       = "invalid reschedule data"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/reschedule/{token}
//
// The token itself is the authorization; the route is public. An unknown
// token and an already used one are indistinguishable from outside.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/reschedule/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(token)
	if err != nil {
		h.logger.Warn("POST /bookings/reschedule/{token} - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/reschedule/{token} - Booking not found for token")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("POST /bookings/reschedule/{token} - Booking not reschedulable")
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/reschedule/{token} - Destination full: slot_id=%d, date=%s",
				req.SlotID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings/reschedule/{token} - Duplicate on destination date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, rescheduleBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/reschedule/{token} - Destination slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotInactive):
			h.logger.Warn("POST /bookings/reschedule/{token} - Destination slot inactive: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInactive)

		case errors.Is(err, rescheduleBooking.ErrDateOutsideWindow):
			h.logger.Warn("POST /bookings/reschedule/{token} - Date outside window: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/reschedule/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/reschedule/{token} - Failed to reschedule: slot_id=%d, error=%v",
				req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/reschedule/{token} - Booking rescheduled: booking_id=%d, slot_id=%d, date=%s",
		result.ID, req.SlotID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
