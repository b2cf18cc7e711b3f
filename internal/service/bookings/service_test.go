package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrydesk/booking-service/internal/domain"
	bookingStorage "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	slotStorage "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	"github.com/pantrydesk/booking-service/internal/service/bookings/models"
	"github.com/pantrydesk/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) add(b *domain.Booking) *domain.Booking {
	r.bookings[b.ID] = b
	return b
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByRescheduleToken(ctx context.Context, token string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.RescheduleToken != nil && *b.RescheduleToken == token {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingStorage.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.UserID == nil || *b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetBySlotAndDate(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.SlotID != filter.SlotID || !b.Date.Equal(filter.Date) {
			continue
		}
		if !filter.IncludeInactive && b.Status == domain.StatusCancelled {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id int64) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

type fakeNotifier struct {
	cancelled int
}

func (n *fakeNotifier) BookingCancelled(b *domain.Booking, slot *domain.Slot) {
	n.cancelled++
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(day int) time.Time {
	return time.Date(2026, time.August, day, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeBookingRepo, *fakeNotifier) {
	bookingRepo := newFakeBookingRepo()
	slotRepo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		1: {ID: 1, StartTime: "10:00", EndTime: "12:00", MaxCapacity: 5, IsActive: true},
	}}
	notifier := &fakeNotifier{}
	svc := NewService(bookingRepo, slotRepo, notifier, nopLogger{})
	svc.timeProvider = fixedClock{now: time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)}
	return svc, bookingRepo, notifier
}

func userCaller(id int64) models.Caller  { return models.Caller{UserID: &id} }
func staffCaller(id int64) models.Caller { return models.Caller{StaffID: &id} }

func TestGetByID_OwnerAndStaffAllowed(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	resp, err := svc.GetByID(context.Background(), 1, userCaller(42))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, staffCaller(9))
	assert.NoError(t, err)
}

func TestGetByID_OtherUserDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	_, err := svc.GetByID(context.Background(), 1, userCaller(7))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 99, staffCaller(1))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwnerFreesBooking(t *testing.T) {
	svc, repo, notifier := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	err := svc.Cancel(context.Background(), 1, userCaller(42))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.NotNil(t, repo.bookings[1].CancelledAt)
	assert.Equal(t, 1, notifier.cancelled)
}

func TestCancel_OtherUserDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	err := svc.Cancel(context.Background(), 1, userCaller(7))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusApproved, repo.bookings[1].Status)
}

func TestCancel_TerminalStatesRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusVisited, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: status})

			err := svc.Cancel(context.Background(), 1, staffCaller(9))
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestCancelByToken(t *testing.T) {
	svc, repo, notifier := newTestService()
	repo.add(&domain.Booking{
		ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20),
		Status: domain.StatusApproved, RescheduleToken: ptr.Ptr("tok"),
	})

	require.NoError(t, svc.CancelByToken(context.Background(), "tok"))
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, 1, notifier.cancelled)

	assert.ErrorIs(t, svc.CancelByToken(context.Background(), "unknown"), ErrBookingNotFound)
}

func TestRecordOutcome(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	// Clock is Aug 25; the Aug 20 visit has passed.
	err := svc.RecordOutcome(context.Background(), 1, &models.RecordOutcomeRequest{
		Caller: staffCaller(9),
		Status: string(domain.StatusVisited),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVisited, repo.bookings[1].Status)
}

func TestRecordOutcome_NonStaffDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	err := svc.RecordOutcome(context.Background(), 1, &models.RecordOutcomeRequest{
		Caller: userCaller(42),
		Status: string(domain.StatusVisited),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRecordOutcome_InvalidStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	for _, status := range []string{"approved", "cancelled", "bogus"} {
		err := svc.RecordOutcome(context.Background(), 1, &models.RecordOutcomeRequest{
			Caller: staffCaller(9),
			Status: status,
		})
		assert.ErrorIs(t, err, ErrInvalidOutcome, "status %q", status)
	}
}

func TestRecordOutcome_BeforeVisitDateRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	// Clock is Aug 25; both today and future dates are too early.
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(25), Status: domain.StatusApproved})
	repo.add(&domain.Booking{ID: 2, UserID: ptr.Ptr(int64(43)), SlotID: 1, Date: date(28), Status: domain.StatusApproved})

	for _, id := range []int64{1, 2} {
		err := svc.RecordOutcome(context.Background(), id, &models.RecordOutcomeRequest{
			Caller: staffCaller(9),
			Status: string(domain.StatusNoShow),
		})
		assert.ErrorIs(t, err, ErrOutcomeTooEarly)
	}
}

func TestRecordOutcome_TerminalBookingRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusCancelled})

	err := svc.RecordOutcome(context.Background(), 1, &models.RecordOutcomeRequest{
		Caller: staffCaller(9),
		Status: string(domain.StatusVisited),
	})
	assert.ErrorIs(t, err, ErrNotTransitionable)
}

func TestGetSlotBookings_StaffOnly(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})
	repo.add(&domain.Booking{ID: 2, UserID: ptr.Ptr(int64(43)), SlotID: 1, Date: date(20), Status: domain.StatusCancelled})

	filter := domain.SlotBookingsFilter{SlotID: 1, Date: date(20)}

	_, err := svc.GetSlotBookings(context.Background(), filter, userCaller(42))
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetSlotBookings(context.Background(), filter, staffCaller(9))
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	filter.IncludeInactive = true
	resp, err = svc.GetSlotBookings(context.Background(), filter, staffCaller(9))
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.add(&domain.Booking{ID: 1, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})
	repo.add(&domain.Booking{ID: 2, UserID: ptr.Ptr(int64(42)), SlotID: 1, Date: date(21), Status: domain.StatusCancelled})
	repo.add(&domain.Booking{ID: 3, UserID: ptr.Ptr(int64(7)), SlotID: 1, Date: date(20), Status: domain.StatusApproved})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	cancelled := string(domain.StatusCancelled)
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}
