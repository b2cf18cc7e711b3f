package get_availability

import (
	"github.com/pantrydesk/booking-service/internal/domain"
	getAvailability "github.com/pantrydesk/booking-service/internal/usecase/get_availability"
)

// SlotAvailabilityResponse is one slot with its remaining capacity.
type SlotAvailabilityResponse struct {
	SlotID         int64  `json:"slotId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	MaxCapacity    int    `json:"maxCapacity"`
	BookedCount    int    `json:"bookedCount"`
	AvailableSpots int    `json:"availableSpots"`
	IsFull         bool   `json:"isFull"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string                     `json:"date"`
	Slots []SlotAvailabilityResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotAvailabilityResponse, 0, len(resp.Slots)),
	}

	for _, sa := range resp.Slots {
		out.Slots = append(out.Slots, SlotAvailabilityResponse{
			SlotID:         sa.Slot.ID,
			StartTime:      sa.Slot.StartTime.String(),
			EndTime:        sa.Slot.EndTime.String(),
			MaxCapacity:    sa.Slot.MaxCapacity,
			BookedCount:    sa.BookedCount,
			AvailableSpots: sa.AvailableSpots(),
			IsFull:         sa.IsFull(),
		})
	}

	return out
}
