package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/pantrydesk/booking-service/internal/domain"
	slotRepo "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	"github.com/pantrydesk/booking-service/internal/service/slots/models"
)

// Service manages the distribution slot roster.
type Service struct {
	repo   SlotRepository
	logger Logger
}

func New(repo SlotRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID returns a single slot.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: GetByID - slot %d", ErrSlotNotFound, id)
		}
		s.logger.Error("slots.service: GetByID - failed to fetch slot %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID: %w", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// ListActive returns all slots currently open for booking.
func (s *Service) ListActive(ctx context.Context) ([]*models.SlotResponse, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("slots.service: ListActive - failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: ListActive: %w", ErrInternal, err)
	}

	return models.FromDomainSlotList(list), nil
}

// Update applies a partial update to a slot. Capacity reductions do not
// touch existing bookings, the slot simply stops admitting once the
// active count reaches the new ceiling.
func (s *Service) Update(ctx context.Context, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	current, err := s.repo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: Update - slot %d", ErrSlotNotFound, req.SlotID)
		}
		s.logger.Error("slots.service: Update - failed to fetch slot %d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: Update: %w", ErrInternal, err)
	}

	next := *current
	if req.StartTime != nil {
		next.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		next.EndTime = *req.EndTime
	}
	if req.MaxCapacity != nil {
		next.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		next.IsActive = *req.IsActive
	}

	if err := validateSlot(&next); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, req.SlotID, &next)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: Update - slot %d", ErrSlotNotFound, req.SlotID)
		}
		s.logger.Error("slots.service: Update - failed to update slot %d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: Update: %w", ErrInternal, err)
	}

	s.logger.Info("slots.service: Update - slot %d updated, capacity=%d active=%t",
		updated.ID, updated.MaxCapacity, updated.IsActive)

	return models.FromDomainSlot(updated), nil
}

func validateSlot(slot *domain.Slot) error {
	if slot.MaxCapacity < domain.MinSlotCapacity || slot.MaxCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d, got %d",
			ErrInvalidCapacity, domain.MinSlotCapacity, domain.MaxSlotCapacity, slot.MaxCapacity)
	}
	if err := slot.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %w", ErrInvalidTimes, err)
	}
	if err := slot.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %w", ErrInvalidTimes, err)
	}
	if !slot.StartTime.IsBefore(slot.EndTime) {
		return fmt.Errorf("%w: start_time %s must be before end_time %s",
			ErrInvalidTimes, slot.StartTime, slot.EndTime)
	}
	return nil
}
