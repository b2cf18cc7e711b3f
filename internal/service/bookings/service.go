package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pantrydesk/booking-service/internal/domain"
	bookingRepo "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
)

// Service covers the booking operations outside the contended admission
// path: reads, cancellation and outcome recording. Cancellation is a single
// UPDATE - the partial unique index stops covering the row at commit, which
// atomically releases both the (booker, date) claim and one unit of slot
// capacity, so no slot lock is needed here.
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     NotificationPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the bookings service.
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier NotificationPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID fetches a booking. Users may only see their own bookings; staff
// may see any.
func (s *Service) GetByID(ctx context.Context, id int64, caller models.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	b, err := s.fetchBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(b, caller); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, err
	}

	return models.FromDomainBooking(b), nil
}

// GetUserBookings lists a user's booking history, optionally filtered by status.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	var status *domain.BookingStatus
	if req.Status != nil {
		st := domain.BookingStatus(*req.Status)
		if !domain.IsValidStatus(st) {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	list, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(list), req.UserID)
	return models.FromDomainBookingList(list), nil
}

// GetSlotBookings lists the roster of a slot on a date. Staff only.
func (s *Service) GetSlotBookings(ctx context.Context, filter domain.SlotBookingsFilter, caller models.Caller) (*models.BookingListResponse, error) {
	if !caller.IsStaff() {
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetSlotBookings: slot=%d date=%s includeInactive=%t",
		filter.SlotID, filter.Date.Format(domain.DateFormat), filter.IncludeInactive)

	list, err := s.bookingRepo.GetBySlotAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetSlotBookings: repository error for slot=%d: %v", filter.SlotID, err)
		return nil, fmt.Errorf("%w: GetSlotBookings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookingList(list), nil
}

// Cancel cancels a booking by id on behalf of its owner or staff.
// On success the slot capacity and the (booker, date) claim are freed for
// immediate rebooking.
func (s *Service) Cancel(ctx context.Context, id int64, caller models.Caller) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	b, err := s.fetchBooking(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	if err := s.checkAccess(b, caller); err != nil {
		s.logger.Warn("Cancel: access denied to booking id=%d", id)
		return err
	}

	return s.cancel(ctx, b)
}

// CancelByToken cancels a booking through its reschedule token - the
// no-login cancel link from the confirmation email. The token itself is the
// authorization.
func (s *Service) CancelByToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token must not be empty", ErrInvalidInput)
	}

	b, err := s.bookingRepo.GetByRescheduleToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByToken: no booking for token")
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error: %v", err)
		return fmt.Errorf("%w: CancelByToken - repository error: %w", ErrInternal, err)
	}

	return s.cancel(ctx, b)
}

// RecordOutcome records a post-visit outcome (no_show or visited) on a
// booking. Staff only, and only once the booking's date has passed;
// outcomes keep counting toward historical capacity.
func (s *Service) RecordOutcome(ctx context.Context, id int64, req *models.RecordOutcomeRequest) error {
	if !req.Caller.IsStaff() {
		return ErrAccessDenied
	}

	status := domain.BookingStatus(req.Status)
	if !domain.IsOutcomeStatus(status) {
		s.logger.Warn("RecordOutcome: invalid outcome=%s for booking id=%d", req.Status, id)
		return ErrInvalidOutcome
	}

	b, err := s.fetchBooking(ctx, id, "RecordOutcome")
	if err != nil {
		return err
	}

	if !b.CanRecordOutcome() {
		s.logger.Warn("RecordOutcome: booking id=%d in status=%s is terminal", id, b.Status)
		return ErrNotTransitionable
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !b.Date.Before(today) {
		s.logger.Warn("RecordOutcome: booking id=%d date=%s has not passed yet",
			id, b.Date.Format(domain.DateFormat))
		return ErrOutcomeTooEarly
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("RecordOutcome: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: RecordOutcome - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RecordOutcome: booking id=%d recorded as %s", id, status)
	return nil
}

func (s *Service) cancel(ctx context.Context, b *domain.Booking) error {
	if !b.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", b.ID, b.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, b.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d", b.ID)

	// Best-effort notification; the slot lookup is only for message content.
	if slot, err := s.slotRepo.GetByID(ctx, b.SlotID); err == nil {
		b.Status = domain.StatusCancelled
		s.notifier.BookingCancelled(b, slot)
	} else {
		s.logger.Warn("Cancel: skipping cancellation notice for booking id=%d: %v", b.ID, err)
	}

	return nil
}

func (s *Service) fetchBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return b, nil
}

// checkAccess allows staff, or the booking's own self-service user.
func (s *Service) checkAccess(b *domain.Booking, caller models.Caller) error {
	if caller.IsStaff() {
		return nil
	}
	if caller.UserID != nil && b.OwnedByUser(*caller.UserID) {
		return nil
	}
	return ErrAccessDenied
}
