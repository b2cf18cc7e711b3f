package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pantrydesk/booking-service/internal/domain"
	bookingRepo "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	slotRepo "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
)

// UseCase moves an existing booking to a new (slot, date), re-running the
// admission capacity check against the destination inside one transaction.
// The original booking is untouched unless the destination admits it.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     NotificationPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the reschedule use case.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute moves the booking or rejects the move deterministically.
//
// Same locking discipline as admission: the destination slot row is locked
// with SELECT ... FOR UPDATE inside a serializable transaction, then the
// destination count is taken excluding the moving booking's own row
// (self-exclusion - moving within the currently held slot/date must not
// count the mover against itself). On success the reschedule token is
// rotated, invalidating previously sent links.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if !domain.InBookingWindow(req.Date, now) {
		uc.logger.Warn("RescheduleBooking: date %s outside booking window", req.Date.Format(domain.DateFormat))
		return nil, ErrDateOutsideWindow
	}

	newToken := uuid.NewString()

	var moved *domain.Booking
	var dest *domain.Slot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.fetchBooking(txCtx, req)
		if err != nil {
			return err
		}

		if !b.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status=%s cannot be rescheduled", b.ID, b.Status)
			return ErrNotReschedulable
		}

		// Lock the destination slot row - the admission latch for the
		// destination capacity check.
		dest, err = uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RescheduleBooking: destination slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to lock destination slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to lock destination slot: %w", ErrInternal, err)
		}

		if !dest.IsActive {
			uc.logger.Warn("RescheduleBooking: destination slot id=%d is inactive", req.SlotID)
			return ErrSlotInactive
		}

		count, err := uc.bookingRepo.CountActiveBySlotDate(txCtx, req.SlotID, req.Date, &b.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to count destination bookings: %v", err)
			return fmt.Errorf("%w: failed to count destination bookings: %w", ErrInternal, err)
		}

		if count >= dest.MaxCapacity {
			uc.logger.Warn("RescheduleBooking: destination slot=%d date=%s full, %d/%d spots taken",
				req.SlotID, req.Date.Format(domain.DateFormat), count, dest.MaxCapacity)
			return ErrSlotFull
		}

		if err := uc.bookingRepo.Move(txCtx, b.ID, req.SlotID, req.Date, newToken); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateActiveBooking) {
				uc.logger.Warn("RescheduleBooking: booker already active on %s", req.Date.Format(domain.DateFormat))
				return ErrDuplicateBooking
			}
			uc.logger.Error("RescheduleBooking: failed to move booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to move booking: %w", ErrInternal, err)
		}

		b.SlotID = req.SlotID
		b.Date = req.Date
		b.RescheduleToken = &newToken
		moved = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: moved booking id=%d to slot=%d date=%s",
		moved.ID, moved.SlotID, moved.Date.Format(domain.DateFormat))

	uc.notifier.BookingRescheduled(moved, dest)

	return &Response{
		ID:              moved.ID,
		UserID:          moved.UserID,
		NewClientID:     moved.NewClientID,
		SlotID:          moved.SlotID,
		Date:            moved.Date,
		Status:          string(moved.Status),
		RescheduleToken: moved.RescheduleToken,
		Note:            moved.Note,
		IsStaffBooking:  moved.IsStaffBooking,
		CreatedAt:       moved.CreatedAt,
		UpdatedAt:       moved.UpdatedAt,
	}, nil
}

// fetchBooking resolves the booking by token or id inside the transaction.
func (uc *UseCase) fetchBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	var b *domain.Booking
	var err error

	if req.Token != nil {
		b, err = uc.bookingRepo.GetByRescheduleToken(ctx, *req.Token)
	} else {
		b, err = uc.bookingRepo.GetByID(ctx, *req.BookingID)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking not found")
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to fetch booking: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch booking: %w", ErrInternal, err)
	}

	return b, nil
}

func validateRequest(req *Request) error {
	if (req.Token != nil) == (req.BookingID != nil) {
		return fmt.Errorf("%w: exactly one of token and bookingId must be set", ErrInvalidInput)
	}

	if req.Token != nil && *req.Token == "" {
		return fmt.Errorf("%w: token must not be empty", ErrInvalidInput)
	}

	if req.BookingID != nil && *req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
