package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
	"github.com/pantrydesk/booking-service/internal/service/slots"
)

const (
	msgInvalidSlotID      = "invalid slot id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time, expected HH:MM"
	msgNotFound           = "slot not found"
	msgInvalidCapacity    = "invalid slot capacity"
	msgInvalidTimes       = "start time must be before end time"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(slotID)
	if err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid time value: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidCapacity):
			h.logger.Warn("PUT /slots/{slotId} - Invalid capacity: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, slots.ErrInvalidTimes):
			h.logger.Warn("PUT /slots/{slotId} - Invalid time range: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidTimes)

		default:
			h.logger.Error("PUT /slots/{slotId} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{slotId} - Slot updated: slot_id=%d, capacity=%d, active=%t",
		result.ID, result.MaxCapacity, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}
