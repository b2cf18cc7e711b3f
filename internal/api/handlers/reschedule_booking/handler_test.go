package reschedule_booking

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

	rescheduleBooking "github.com/pantrydesk/booking-service/internal/usecase/reschedule_booking"
	"github.com/pantrydesk/booking-service/pkg/ptr"
)

type stubUseCase struct {
	resp *rescheduleBooking.Response
	err  error

	gotReq *rescheduleBooking.Request
}

func (s *stubUseCase) Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newRouter(uc RescheduleBookingUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/reschedule/{token}", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/reschedule/"+token, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReschedulesBooking(t *testing.T) {
	fresh := "fresh-token"
	uc := &stubUseCase{resp: &rescheduleBooking.Response{
		ID:              10,
		UserID:          ptr.Ptr(int64(42)),
		SlotID:          2,
		Date:            time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC),
		Status:          "approved",
		RescheduleToken: &fresh,
	}}
	router := newRouter(uc)

	rec := doRequest(t, router, "old-token", `{"slotId":2,"date":"2026-09-16"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.SlotID)
	assert.Equal(t, "2026-09-16", resp.Date)
	require.NotNil(t, resp.RescheduleToken)
	assert.Equal(t, fresh, *resp.RescheduleToken)

	require.NotNil(t, uc.gotReq.Token)
	assert.Equal(t, "old-token", *uc.gotReq.Token)
	assert.Nil(t, uc.gotReq.BookingID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown token", rescheduleBooking.ErrBookingNotFound, http.StatusNotFound},
		{"not reschedulable", rescheduleBooking.ErrNotReschedulable, http.StatusBadRequest},
		{"destination full", rescheduleBooking.ErrSlotFull, http.StatusConflict},
		{"duplicate on date", rescheduleBooking.ErrDuplicateBooking, http.StatusConflict},
		{"destination not found", rescheduleBooking.ErrSlotNotFound, http.StatusNotFound},
		{"destination inactive", rescheduleBooking.ErrSlotInactive, http.StatusBadRequest},
		{"outside window", rescheduleBooking.ErrDateOutsideWindow, http.StatusBadRequest},
		{"internal", rescheduleBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&stubUseCase{err: tt.err})

			rec := doRequest(t, router, "tok", `{"slotId":2,"date":"2026-09-16"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, "tok", `{"slotId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	router := newRouter(&stubUseCase{})

	rec := doRequest(t, router, "tok", `{"slotId":2,"date":"16/09/2026"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
