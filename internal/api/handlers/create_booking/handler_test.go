package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrydesk/booking-service/internal/api/middleware"
	admitBooking "github.com/pantrydesk/booking-service/internal/usecase/admit_booking"
	"github.com/pantrydesk/booking-service/pkg/ptr"
)

type stubUseCase struct {
	resp *admitBooking.Response
	err  error

	gotReq *admitBooking.Request
}

func (s *stubUseCase) Execute(ctx context.Context, req *admitBooking.Request) (*admitBooking.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newRouter(uc AdmitBookingUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/api/v1/bookings", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CreatesBooking(t *testing.T) {
	token := "tok-1"
	uc := &stubUseCase{resp: &admitBooking.Response{
		ID:              10,
		UserID:          ptr.Ptr(int64(42)),
		SlotID:          1,
		Date:            time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		Status:          "approved",
		RescheduleToken: &token,
	}}
	router := newRouter(uc)

	rec := doRequest(t, router, `{"slotId":1,"date":"2026-09-15"}`, map[string]string{"X-User-ID": "42"})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "2026-09-15", resp.Date)
	require.NotNil(t, resp.RescheduleToken)
	assert.Equal(t, token, *resp.RescheduleToken)

	// The authenticated identity, not the body, names the booker.
	require.NotNil(t, uc.gotReq.UserID)
	assert.Equal(t, int64(42), *uc.gotReq.UserID)
	assert.False(t, uc.gotReq.IsStaffBooking)
}

func TestHandle_RequiresIdentity(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, `{"slotId":1,"date":"2026-09-15"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"slot full", admitBooking.ErrSlotFull, http.StatusConflict},
		{"duplicate booking", admitBooking.ErrDuplicateBooking, http.StatusConflict},
		{"slot not found", admitBooking.ErrSlotNotFound, http.StatusNotFound},
		{"user not found", admitBooking.ErrUserNotFound, http.StatusNotFound},
		{"slot inactive", admitBooking.ErrSlotInactive, http.StatusBadRequest},
		{"date outside window", admitBooking.ErrDateOutsideWindow, http.StatusBadRequest},
		{"invalid input", admitBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", admitBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&stubUseCase{err: tt.err})

			rec := doRequest(t, router, `{"slotId":1,"date":"2026-09-15"}`, map[string]string{"X-User-ID": "42"})
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, `{not json`, map[string]string{"X-User-ID": "42"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, `{"slotId":1,"date":"15.09.2026"}`, map[string]string{"X-User-ID": "42"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
