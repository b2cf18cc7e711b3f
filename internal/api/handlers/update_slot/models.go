package update_slot

import (
	"github.com/pantrydesk/booking-service/internal/service/slots/models"
	"github.com/pantrydesk/booking-service/pkg/types"
)

// UpdateSlotRequest HTTP request model. Omitted fields keep their
// current value.
type UpdateSlotRequest struct {
	StartTime   *string `json:"startTime,omitempty"` // "10:00"
	EndTime     *string `json:"endTime,omitempty"`
	MaxCapacity *int    `json:"maxCapacity,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest converts the HTTP request into the service model.
func (r *UpdateSlotRequest) ToServiceRequest(slotID int64) (*models.UpdateSlotRequest, error) {
	req := &models.UpdateSlotRequest{
		SlotID:      slotID,
		MaxCapacity: r.MaxCapacity,
		IsActive:    r.IsActive,
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &ts
	}

	return req, nil
}
