package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrydesk/booking-service/internal/domain"
	getAvailability "github.com/pantrydesk/booking-service/internal/usecase/get_availability"
)

type stubUseCase struct {
	resp *getAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newRouter(uc GetAvailabilityUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsAvailability(t *testing.T) {
	date := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailability.Response{
		Date: date,
		Slots: []domain.SlotAvailability{
			{
				Slot:        domain.Slot{ID: 1, StartTime: "10:00", EndTime: "12:00", MaxCapacity: 5, IsActive: true},
				BookedCount: 3,
			},
		},
	}}
	router := newRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/availability?date=2026-09-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-15", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(1), resp.Slots[0].SlotID)
	assert.Equal(t, 3, resp.Slots[0].BookedCount)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.False(t, resp.Slots[0].IsFull)
}

func TestHandle_MissingDate(t *testing.T) {
	router := newRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_OutsideWindow(t *testing.T) {
	router := newRouter(&stubUseCase{err: getAvailability.ErrDateOutsideWindow})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/availability?date=2027-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
