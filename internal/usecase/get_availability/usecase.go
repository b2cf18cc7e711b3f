package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
)

// Request asks for slot availability on a date.
type Request struct {
	Date time.Time
}

// Response lists active slots with their remaining capacity on the date.
type Response struct {
	Date  time.Time
	Slots []domain.SlotAvailability
}

// UseCase computes live slot availability for the booking picker.
// Counts are read outside any lock - they are advisory; the admission
// routine re-checks capacity transactionally, so a stale picker never
// causes an overbook, only a 409 on submit.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the availability use case.
func NewUseCase(bookingRepo BookingRepository, slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute returns the availability of every active slot on the date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if !domain.InBookingWindow(req.Date, now) {
		uc.logger.Warn("GetAvailability: date %s outside booking window", req.Date.Format(domain.DateFormat))
		return nil, ErrDateOutsideWindow
	}

	slots, err := uc.slotRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
	}

	counts, err := uc.bookingRepo.GetActiveCountsByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
	}

	availability := make([]domain.SlotAvailability, 0, len(slots))
	for _, s := range slots {
		availability = append(availability, domain.SlotAvailability{
			Slot:        *s,
			BookedCount: counts[s.ID],
		})
	}

	uc.logger.Info("GetAvailability: %d slots for date=%s", len(availability), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: availability,
	}, nil
}
