package admit_booking

import (
	"fmt"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// validateRequest validates the admission request shape.
// The date window check lives in Execute because it depends on the clock.
func validateRequest(req *Request) error {
	ref := domain.BookerRef{UserID: req.UserID, NewClientID: req.NewClientID}
	if !ref.IsValid() {
		return fmt.Errorf("%w: exactly one of userId and newClientId must be set", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if req.NewClientID != nil && *req.NewClientID <= 0 {
		return fmt.Errorf("%w: newClientId must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}
