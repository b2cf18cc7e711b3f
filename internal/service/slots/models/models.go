package models

import (
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
	"github.com/pantrydesk/booking-service/pkg/types"
)

// UpdateSlotRequest carries a partial slot update. Nil fields keep the
// current value.
type UpdateSlotRequest struct {
	SlotID      int64
	StartTime   *types.TimeString
	EndTime     *types.TimeString
	MaxCapacity *int
	IsActive    *bool
}

// SlotResponse is the outward representation of a slot.
type SlotResponse struct {
	ID          int64            `json:"id"`
	StartTime   types.TimeString `json:"start_time"`
	EndTime     types.TimeString `json:"end_time"`
	MaxCapacity int              `json:"max_capacity"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FromDomainSlot converts a domain slot to the response form.
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		MaxCapacity: s.MaxCapacity,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList converts a list of domain slots.
func FromDomainSlotList(list []*domain.Slot) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomainSlot(s))
	}
	return out
}
