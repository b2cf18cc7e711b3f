package create_staff_booking

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
	msgStaffNotFound      = "staff member not recognized"
	msgSlotFull           = "slot has no remaining capacity on this date"
	msgDuplicateBooking   = "the booker already has a booking on this date"
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

// Handle POST /api/v1/bookings/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateStaffBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(staffID)
	if err != nil {
		h.logger.Warn("POST /bookings/staff - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, admitBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/staff - Slot full: staff_id=%d, slot_id=%d, date=%s",
				staffID, req.SlotID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, admitBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings/staff - Duplicate booking: staff_id=%d, date=%s", staffID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, admitBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/staff - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, admitBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings/staff - User not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, admitBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/staff - Staff not found: staff_id=%d", staffID)
			handlers.RespondForbidden(w, msgStaffNotFound)

		case errors.Is(err, admitBooking.ErrSlotInactive):
			h.logger.Warn("POST /bookings/staff - Slot inactive: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInactive)

		case errors.Is(err, admitBooking.ErrDateOutsideWindow):
			h.logger.Warn("POST /bookings/staff - Date outside window: staff_id=%d, date=%s", staffID, req.Date)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, admitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/staff - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/staff - Failed to create booking: staff_id=%d, slot_id=%d, error=%v",
				staffID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/staff - Booking created: booking_id=%d, staff_id=%d, slot_id=%d, date=%s",
		result.ID, staffID, req.SlotID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
