package get_schedules

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	getAvailableSlots "github.com/lamesa/LaMesa-ReservationService/internal/usecase/get_available_slots"
)

type mockUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns available slots", func(t *testing.T) {
		uc := &mockUseCase{resp: &getAvailableSlots.Response{
			Date: date,
			Slots: []domain.AvailableSlot{
				{ID: "12:00", Date: date, Day: "miércoles", TimeSlot: "12:00"},
				{ID: "12:30", Date: date, Day: "miércoles", TimeSlot: "12:30"},
			},
		}}
		h := NewHandler(uc, noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/schedules?date=2025-10-15", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp GetSchedulesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Schedules, 2)
		assert.Equal(t, "12:00", resp.Schedules[0].ID)
		assert.Equal(t, "2025-10-15", resp.Schedules[0].Date)
		assert.Equal(t, "miércoles", resp.Schedules[0].Day)
		assert.False(t, resp.Schedules[0].Booked)
	})

	t.Run("missing date yields 400", func(t *testing.T) {
		h := NewHandler(&mockUseCase{}, noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "La fecha es requerida", resp["message"])
	})

	t.Run("malformed date yields 400", func(t *testing.T) {
		h := NewHandler(&mockUseCase{}, noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/schedules?date=15-10-2025", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure yields 500, never an empty success", func(t *testing.T) {
		uc := &mockUseCase{err: errors.New("connection refused")}
		h := NewHandler(uc, noopLogger{})

		req := httptest.NewRequest(http.MethodGet, "/api/schedules?date=2025-10-15", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
	})
}
