package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrydesk/booking-service/internal/domain"
	slotStorage "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	"github.com/pantrydesk/booking-service/internal/service/slots/models"
	"github.com/pantrydesk/booking-service/pkg/ptr"
	"github.com/pantrydesk/booking-service/pkg/types"
)

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[int64]*domain.Slot{
		1: {ID: 1, StartTime: "10:00", EndTime: "12:00", MaxCapacity: 20, IsActive: true},
		2: {ID: 2, StartTime: "14:00", EndTime: "16:00", MaxCapacity: 10, IsActive: false},
	}}
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) ListActive(ctx context.Context) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Update(ctx context.Context, id int64, s *domain.Slot) (*domain.Slot, error) {
	if _, ok := r.slots[id]; !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	cp := *s
	cp.ID = id
	r.slots[id] = &cp
	out := cp
	return &out, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSlotRequest{
		SlotID:      1,
		MaxCapacity: ptr.Ptr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.MaxCapacity)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)
	assert.True(t, resp.IsActive)
}

func TestUpdate_Deactivate(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSlotRequest{
		SlotID:   1,
		IsActive: ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestUpdate_CapacityBounds(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	for _, capacity := range []int{0, -1, domain.MaxSlotCapacity + 1} {
		_, err := svc.Update(context.Background(), &models.UpdateSlotRequest{
			SlotID:      1,
			MaxCapacity: ptr.Ptr(capacity),
		})
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", capacity)
	}
}

func TestUpdate_TimeOrder(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	start := types.TimeString("15:00")
	end := types.TimeString("14:00")
	_, err := svc.Update(context.Background(), &models.UpdateSlotRequest{
		SlotID:    1,
		StartTime: &start,
		EndTime:   &end,
	})
	assert.ErrorIs(t, err, ErrInvalidTimes)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSlotRequest{
		SlotID:      99,
		MaxCapacity: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListActive(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := New(repo, nopLogger{})

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(1), resp[0].ID)
}
