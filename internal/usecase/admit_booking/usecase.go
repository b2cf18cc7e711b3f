package admit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pantrydesk/booking-service/internal/domain"
	bookingRepo "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	slotRepo "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	profileClient "github.com/pantrydesk/booking-service/internal/integrations/profileservice"
)

// UseCase is the booking admission routine, shared by the self-service and
// staff create endpoints. It decides, under concurrent callers, whether a
// booking for (slot, date) may be admitted and persists it atomically with
// the capacity check.
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	profileClient ProfileServiceClient
	notifier      NotificationPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase creates the admission use case.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	profileClient ProfileServiceClient,
	notifier NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		profileClient: profileClient,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute admits a booking or rejects it deterministically.
//
// The capacity check and the insert run in one serializable transaction.
// Inside it the slot row is locked with SELECT ... FOR UPDATE, so concurrent
// admissions for the same slot serialize: whichever transaction commits
// first takes the last spot, the loser re-reads the committed count and gets
// ErrSlotFull - never a silent overbook. The partial unique index over the
// booker reference and date backs the one-active-booking-per-day invariant
// and surfaces as ErrDuplicateBooking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdmitBooking: user=%v, new_client=%v, slot=%d, date=%s, staff=%t",
		fmtRef(req.UserID), fmtRef(req.NewClientID), req.SlotID, req.Date.Format(domain.DateFormat), req.IsStaffBooking)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdmitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if !domain.InBookingWindow(req.Date, now) {
		uc.logger.Warn("AdmitBooking: date %s outside booking window", req.Date.Format(domain.DateFormat))
		return nil, ErrDateOutsideWindow
	}

	// Resolve the acting staff member against the profile service. Walk-in
	// client records are owned by the staff UI and validated there.
	if req.IsStaffBooking && req.StaffID != nil {
		if _, err := uc.profileClient.GetStaffMember(ctx, *req.StaffID); err != nil {
			if errors.Is(err, profileClient.ErrStaffNotFound) {
				uc.logger.Warn("AdmitBooking: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("AdmitBooking: failed to resolve staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to resolve staff member: %w", ErrInternal, err)
		}
	}

	// Resolve the self-service booker.
	if req.UserID != nil {
		if _, err := uc.profileClient.GetClient(ctx, *req.UserID); err != nil {
			if errors.Is(err, profileClient.ErrClientNotFound) {
				uc.logger.Warn("AdmitBooking: user id=%d not found", *req.UserID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("AdmitBooking: failed to resolve user id=%d: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: failed to resolve user: %w", ErrInternal, err)
		}
	}

	token := uuid.NewString()

	var result *domain.Booking
	var slot *domain.Slot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Lock the slot row first: this is the admission latch for the
		// (slot, date) capacity counter.
		var err error
		slot, err = uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("AdmitBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("AdmitBooking: failed to lock slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		if !slot.IsActive {
			uc.logger.Warn("AdmitBooking: slot id=%d is inactive", req.SlotID)
			return ErrSlotInactive
		}

		count, err := uc.bookingRepo.CountActiveBySlotDate(txCtx, req.SlotID, req.Date, nil)
		if err != nil {
			uc.logger.Error("AdmitBooking: failed to count bookings for slot=%d date=%s: %v",
				req.SlotID, req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
		}

		if count >= slot.MaxCapacity {
			uc.logger.Warn("AdmitBooking: slot=%d date=%s full, %d/%d spots taken",
				req.SlotID, req.Date.Format(domain.DateFormat), count, slot.MaxCapacity)
			return ErrSlotFull
		}

		uc.logger.Info("AdmitBooking: slot=%d date=%s has capacity, %d/%d spots taken",
			req.SlotID, req.Date.Format(domain.DateFormat), count, slot.MaxCapacity)

		b := &domain.Booking{
			UserID:          req.UserID,
			NewClientID:     req.NewClientID,
			SlotID:          req.SlotID,
			Date:            req.Date,
			Status:          domain.StatusApproved,
			RescheduleToken: &token,
			Note:            req.Note,
			IsStaffBooking:  req.IsStaffBooking,
		}

		created, err := uc.bookingRepo.Create(txCtx, b)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateActiveBooking) {
				uc.logger.Warn("AdmitBooking: booker already has an active booking on %s",
					req.Date.Format(domain.DateFormat))
				return ErrDuplicateBooking
			}
			uc.logger.Error("AdmitBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AdmitBooking: admitted booking id=%d for slot=%d date=%s",
		result.ID, result.SlotID, result.Date.Format(domain.DateFormat))

	// Best-effort, after commit: a failed notification never affects the
	// committed booking.
	uc.notifier.BookingConfirmed(result, slot)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		NewClientID:     result.NewClientID,
		SlotID:          result.SlotID,
		Date:            result.Date,
		Status:          string(result.Status),
		RescheduleToken: result.RescheduleToken,
		Note:            result.Note,
		IsStaffBooking:  result.IsStaffBooking,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func fmtRef(v *int64) interface{} {
	if v == nil {
		return "-"
	}
	return *v
}
