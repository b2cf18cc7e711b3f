package get_slot_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/domain"
	"github.com/pantrydesk/booking-service/internal/service/bookings"
)

const (
	msgInvalidSlotID = "invalid slot id"
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"
	msgMissingDate   = "date query parameter is required"
	msgForbidden     = "access denied"
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

// Handle GET /api/v1/slots/{slotId}/bookings?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/bookings - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	filter := domain.SlotBookingsFilter{
		SlotID:          slotID,
		Date:            date,
		IncludeInactive: includeInactive,
	}
	caller := handlers.CallerFromContext(r.Context())

	result, err := h.service.GetSlotBookings(r.Context(), filter, caller)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /slots/{slotId}/bookings - Access denied: slot_id=%d", slotID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /slots/{slotId}/bookings - Failed to get bookings: slot_id=%d, date=%s, error=%v",
				slotID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{slotId}/bookings - Bookings retrieved: slot_id=%d, date=%s, count=%d",
		slotID, dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
