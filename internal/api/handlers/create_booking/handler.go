package create_booking

import (
	"errors"
	"net/http"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/api/middleware"
	admitBooking "github.com/pantrydesk/booking-service/internal/usecase/admit_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgSlotNotFound       = "slot not found"
	msgSlotInactive       = "slot is not open for booking"
	msgUserNotFound       = "user not found"
	msgSlotFull           = "slot has no remaining capacity on this date"
	msgDuplicateBooking   = "you already have a booking on this date"
	msgDateOutsideWindow  = "date is outside the booking window"
	msgInvalidInput       = "invalid booking data"
)

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, admitBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, slot_id=%d, date=%s",
				userID, req.SlotID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, admitBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, admitBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, admitBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, admitBooking.ErrSlotInactive):
			h.logger.Warn("POST /bookings - Slot inactive: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInactive)

		case errors.Is(err, admitBooking.ErrDateOutsideWindow):
			h.logger.Warn("POST /bookings - Date outside window: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, admitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, slot_id=%d, date=%s",
		result.ID, userID, req.SlotID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
