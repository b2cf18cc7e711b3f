package handlers

import (
	"context"

	"github.com/pantrydesk/booking-service/internal/api/middleware"
	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

// CallerFromContext builds the service caller from the authenticated
// identities placed in the context by the auth middleware.
func CallerFromContext(ctx context.Context) models.Caller {
	var caller models.Caller
	if userID, ok := middleware.UserIDFromContext(ctx); ok {
		caller.UserID = &userID
	}
	if staffID, ok := middleware.StaffIDFromContext(ctx); ok {
		caller.StaffID = &staffID
	}
	return caller
}
