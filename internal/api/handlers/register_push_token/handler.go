package register_push_token

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pantrydesk/booking-service/internal/api/handlers"
)

const (
	msgInvalidUserID      = "invalid user id"
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "deviceId and token are required"
	msgForbidden          = "access denied"
)

type Handler struct {
	registrar PushTokenRegistrar
	logger    Logger
}

func NewHandler(registrar PushTokenRegistrar, logger Logger) *Handler {
	return &Handler{
		registrar: registrar,
		logger:    logger,
	}
}

// Handle POST /api/v1/users/{userId}/push-tokens
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /users/{id}/push-tokens - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	caller := handlers.CallerFromContext(r.Context())
	if !caller.IsStaff() && (caller.UserID == nil || *caller.UserID != userID) {
		h.logger.Warn("POST /users/{id}/push-tokens - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req RegisterPushTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/push-tokens - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.DeviceID == "" || req.Token == "" {
		h.logger.Warn("POST /users/{id}/push-tokens - Missing fields: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	if err := h.registrar.RegisterPushToken(r.Context(), userID, req.DeviceID, req.Token); err != nil {
		h.logger.Error("POST /users/{id}/push-tokens - Failed to register token: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /users/{id}/push-tokens - Token registered: user_id=%d, device_id=%s",
		userID, req.DeviceID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
