package delete_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations"
)

type mockService struct {
	err       error
	calledID  int64
	calledFor string
}

func (m *mockService) Delete(ctx context.Context, id int64, email string) error {
	m.calledID = id
	m.calledFor = email
	return m.err
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		svc := &mockService{}
		h := NewHandler(svc, noopLogger{})

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments?id=10&customer_email=ana@example.com", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(10), svc.calledID)
		assert.Equal(t, "ana@example.com", svc.calledFor)

		var resp DeleteAppointmentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Reserva eliminada exitosamente", resp.Message)
	})

	t.Run("missing query params yield 400", func(t *testing.T) {
		h := NewHandler(&mockService{}, noopLogger{})

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments?id=10", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric id yields 400", func(t *testing.T) {
		h := NewHandler(&mockService{}, noopLogger{})

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments?id=abc&customer_email=ana@example.com", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown reservation or wrong email yields 404", func(t *testing.T) {
		svc := &mockService{err: reservations.ErrNotFoundOrUnauthorized}
		h := NewHandler(svc, noopLogger{})

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments?id=10&customer_email=otro@example.com", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
	})

	t.Run("internal error yields 500", func(t *testing.T) {
		svc := &mockService{err: reservations.ErrInternal}
		h := NewHandler(svc, noopLogger{})

		req := httptest.NewRequest(http.MethodDelete, "/api/appointments?id=10&customer_email=ana@example.com", nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
