package admit_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrydesk/booking-service/internal/domain"
	bookingRepo "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	slotStorage "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	"github.com/pantrydesk/booking-service/internal/integrations/profileservice"
	"github.com/pantrydesk/booking-service/pkg/ptr"
)

// fakeStore backs the repository and transaction manager fakes with one
// in-memory table. Its mutex stands in for the serializable transaction
// plus slot row lock: DoSerializable holds it for the whole callback, so
// check-then-insert sequences from concurrent goroutines serialize the
// same way they do against postgres.
type fakeStore struct {
	mu       sync.Mutex
	slots    map[int64]*domain.Slot
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[int64]*domain.Slot),
		bookings: make(map[int64]*domain.Booking),
		nextID:   1,
	}
}

func (s *fakeStore) addSlot(id int64, capacity int, active bool) {
	s.slots[id] = &domain.Slot{
		ID:          id,
		StartTime:   "10:00",
		EndTime:     "12:00",
		MaxCapacity: capacity,
		IsActive:    active,
	}
}

func (s *fakeStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

func (s *fakeStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	cp := *slot
	return &cp, nil
}

func (s *fakeStore) CountActiveBySlotDate(ctx context.Context, slotID int64, date time.Time, excludeID *int64) (int, error) {
	count := 0
	for _, b := range s.bookings {
		if b.SlotID != slotID || !b.Date.Equal(date) || !b.CountsTowardCapacity() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (s *fakeStore) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range s.bookings {
		if !existing.Date.Equal(b.Date) || existing.Status == domain.StatusCancelled {
			continue
		}
		if b.UserID != nil && existing.UserID != nil && *existing.UserID == *b.UserID {
			return nil, bookingRepo.ErrDuplicateActiveBooking
		}
		if b.NewClientID != nil && existing.NewClientID != nil && *existing.NewClientID == *b.NewClientID {
			return nil, bookingRepo.ErrDuplicateActiveBooking
		}
	}

	cp := *b
	cp.ID = s.nextID
	s.nextID++
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.bookings[cp.ID] = &cp

	out := cp
	return &out, nil
}

type fakeProfileClient struct {
	missing      map[int64]bool
	missingStaff map[int64]bool
}

func (c *fakeProfileClient) GetClient(ctx context.Context, clientID int64) (*profileservice.ClientProfile, error) {
	if c.missing[clientID] {
		return nil, profileservice.ErrClientNotFound
	}
	return &profileservice.ClientProfile{ID: clientID}, nil
}

func (c *fakeProfileClient) GetStaffMember(ctx context.Context, staffID int64) (*profileservice.StaffMember, error) {
	if c.missingStaff[staffID] {
		return nil, profileservice.ErrStaffNotFound
	}
	return &profileservice.StaffMember{ID: staffID}, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed int
}

func (n *fakeNotifier) BookingConfirmed(b *domain.Booking, slot *domain.Slot) {
	n.mu.Lock()
	n.confirmed++
	n.mu.Unlock()
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(store *fakeStore) (*UseCase, *fakeNotifier) {
	notifier := &fakeNotifier{}
	uc := NewUseCase(store, store, &fakeProfileClient{}, notifier, store, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC)}
	return uc, notifier
}

func testDate() time.Time {
	return time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
}

func TestExecute_AdmitsBooking(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, true)
	uc, notifier := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(42)),
		SlotID: 1,
		Date:   testDate(),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Equal(t, int64(42), *resp.UserID)
	require.NotNil(t, resp.RescheduleToken)
	assert.NotEmpty(t, *resp.RescheduleToken)
	assert.Equal(t, 1, notifier.confirmed)
}

func TestExecute_RejectsWhenSlotFull(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 1, true)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(1)),
		SlotID: 1,
		Date:   testDate(),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(2)),
		SlotID: 1,
		Date:   testDate(),
	})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_RejectsDuplicateActiveBookingOnDate(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 10, true)
	store.addSlot(2, 10, true)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(7)),
		SlotID: 1,
		Date:   testDate(),
	})
	require.NoError(t, err)

	// Same day, different slot: still one visit per day.
	_, err = uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(7)),
		SlotID: 2,
		Date:   testDate(),
	})
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_CancelledBookingFreesCapacityAndDayClaim(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 1, true)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(7)),
		SlotID: 1,
		Date:   testDate(),
	})
	require.NoError(t, err)

	store.mu.Lock()
	store.bookings[resp.ID].Status = domain.StatusCancelled
	store.mu.Unlock()

	// Same user, same slot, same date: the cancelled row holds neither
	// the capacity unit nor the per-day claim.
	resp2, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(7)),
		SlotID: 1,
		Date:   testDate(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, resp2.ID)
}

func TestExecute_ConcurrentAdmissionsNeverExceedCapacity(t *testing.T) {
	const capacity = 3
	const callers = 10

	store := newFakeStore()
	store.addSlot(1, capacity, true)
	uc, _ := newTestUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				UserID: ptr.Ptr(int64(100 + i)),
				SlotID: 1,
				Date:   testDate(),
			})
		}(i)
	}
	wg.Wait()

	admitted, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case assert.ErrorIs(t, err, ErrSlotFull):
			full++
		}
	}

	assert.Equal(t, capacity, admitted)
	assert.Equal(t, callers-capacity, full)

	count, err := store.CountActiveBySlotDate(context.Background(), 1, testDate(), nil)
	require.NoError(t, err)
	assert.Equal(t, capacity, count)
}

func TestExecute_StaffBookingForWalkInClient(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, true)
	uc, notifier := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		NewClientID:    ptr.Ptr(int64(501)),
		SlotID:         1,
		Date:           testDate(),
		IsStaffBooking: true,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.UserID)
	assert.Equal(t, int64(501), *resp.NewClientID)
	assert.True(t, resp.IsStaffBooking)
	assert.Equal(t, 1, notifier.confirmed)
}

func TestExecute_RejectsDuplicateWalkInClientOnDate(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 10, true)
	store.addSlot(2, 10, true)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		NewClientID:    ptr.Ptr(int64(501)),
		SlotID:         1,
		Date:           testDate(),
		IsStaffBooking: true,
	})
	require.NoError(t, err)

	// Walk-in clients hold the one-visit-per-day claim too.
	_, err = uc.Execute(context.Background(), &Request{
		NewClientID:    ptr.Ptr(int64(501)),
		SlotID:         2,
		Date:           testDate(),
		IsStaffBooking: true,
	})
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_ConcurrentStaffBookingsContendForLastSpot(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 1, true)
	uc, _ := newTestUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				NewClientID:    ptr.Ptr(int64(600 + i)),
				SlotID:         1,
				Date:           testDate(),
				IsStaffBooking: true,
			})
		}(i)
	}
	wg.Wait()

	admitted, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case assert.ErrorIs(t, err, ErrSlotFull):
			full++
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, full)

	count, err := store.CountActiveBySlotDate(context.Background(), 1, testDate(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecute_SlotNotFound(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(1)),
		SlotID: 99,
		Date:   testDate(),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotInactive(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, false)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(1)),
		SlotID: 1,
		Date:   testDate(),
	})
	assert.ErrorIs(t, err, ErrSlotInactive)
}

func TestExecute_DateOutsideWindow(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, true)
	uc, _ := newTestUseCase(store)

	// Clock is 2026-08-10, window ends 2026-09-30.
	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(1)),
		SlotID: 1,
		Date:   time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateOutsideWindow)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(1)),
		SlotID: 1,
		Date:   time.Date(2026, time.August, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateOutsideWindow)
}

func TestExecute_UserNotFound(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, true)
	notifier := &fakeNotifier{}
	uc := NewUseCase(store, store, &fakeProfileClient{missing: map[int64]bool{5: true}}, notifier, store, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		UserID: ptr.Ptr(int64(5)),
		SlotID: 1,
		Date:   testDate(),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_UnknownStaffRejected(t *testing.T) {
	store := newFakeStore()
	store.addSlot(1, 5, true)
	notifier := &fakeNotifier{}
	uc := NewUseCase(store, store, &fakeProfileClient{missingStaff: map[int64]bool{9: true}}, notifier, store, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		NewClientID:    ptr.Ptr(int64(501)),
		SlotID:         1,
		Date:           testDate(),
		IsStaffBooking: true,
		StaffID:        ptr.Ptr(int64(9)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestValidateRequest(t *testing.T) {
	longNote := string(make([]byte, domain.MaxNoteLength+1))

	tests := []struct {
		name string
		req  *Request
	}{
		{"no booker reference", &Request{SlotID: 1, Date: testDate()}},
		{"both booker references", &Request{UserID: ptr.Ptr(int64(1)), NewClientID: ptr.Ptr(int64(2)), SlotID: 1, Date: testDate()}},
		{"non-positive user id", &Request{UserID: ptr.Ptr(int64(0)), SlotID: 1, Date: testDate()}},
		{"non-positive slot id", &Request{UserID: ptr.Ptr(int64(1)), SlotID: 0, Date: testDate()}},
		{"missing date", &Request{UserID: ptr.Ptr(int64(1)), SlotID: 1}},
		{"note too long", &Request{UserID: ptr.Ptr(int64(1)), SlotID: 1, Date: testDate(), Note: &longNote}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRequest(tt.req), ErrInvalidInput)
		})
	}
}
