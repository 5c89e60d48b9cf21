package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	reservationRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/schedule"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	"github.com/lamesa/LaMesa-ReservationService/pkg/ptr"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

type mockReservationRepository struct {
	createErr    error
	created      *domain.Reservation
	existsBooked bool
	existsErr    error
}

func (m *mockReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	out := *res
	out.ID = 42
	out.CreatedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	m.created = &out
	return &out, nil
}

func (m *mockReservationRepository) ExistsBookedAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	return m.existsBooked, m.existsErr
}

type mockScheduleRepository struct {
	slot     *domain.ScheduleSlot
	getErr   error
	claimErr error
	claimed  []int64
}

func (m *mockScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.slot, nil
}

func (m *mockScheduleRepository) Claim(ctx context.Context, id int64) error {
	if m.claimErr != nil {
		return m.claimErr
	}
	m.claimed = append(m.claimed, id)
	return nil
}

type mockNotifier struct {
	sent    []*mailer.Message
	sendErr error
}

func (m *mockNotifier) Send(ctx context.Context, msg *mailer.Message) error {
	m.sent = append(m.sent, msg)
	return m.sendErr
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// inlineTxManager выполняет callback без настоящей транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func validRequest() *Request {
	return &Request{
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana García",
		Guests:        4,
		Service:       "cena",
		Date:          time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "20:30",
	}
}

func newUseCaseForTest(resRepo *mockReservationRepository, schedRepo *mockScheduleRepository, notifier *mockNotifier, pinger *mockPinger) *UseCase {
	return NewUseCase(resRepo, schedRepo, notifier, pinger, inlineTxManager{}, time.Second, noopLogger{})
}

func TestUseCase_Execute_Success(t *testing.T) {
	resRepo := &mockReservationRepository{}
	notifier := &mockNotifier{}
	uc := newUseCaseForTest(resRepo, &mockScheduleRepository{}, notifier, &mockPinger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.ConfirmationCode)
	assert.True(t, resp.Booked)
	assert.False(t, resp.Provisional)
	assert.Equal(t, types.TimeString("20:30"), resp.Time)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, mailer.KindConfirmation, notifier.sent[0].Kind)
	assert.Equal(t, "ana@example.com", notifier.sent[0].To)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	t.Run("availability check finds existing booking", func(t *testing.T) {
		resRepo := &mockReservationRepository{existsBooked: true}
		uc := newUseCaseForTest(resRepo, &mockScheduleRepository{}, &mockNotifier{}, &mockPinger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("unique index rejects concurrent insert", func(t *testing.T) {
		resRepo := &mockReservationRepository{createErr: reservationRepo.ErrDuplicateSlot}
		uc := newUseCaseForTest(resRepo, &mockScheduleRepository{}, &mockNotifier{}, &mockPinger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestUseCase_Execute_SlotReference(t *testing.T) {
	slot := &domain.ScheduleSlot{
		ID:       7,
		Date:     time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot: "13:00",
	}

	t.Run("resolves date and time from the schedule slot", func(t *testing.T) {
		resRepo := &mockReservationRepository{}
		schedRepo := &mockScheduleRepository{slot: slot}
		uc := newUseCaseForTest(resRepo, schedRepo, &mockNotifier{}, &mockPinger{})

		req := validRequest()
		req.Date = time.Time{}
		req.StartTime = ""
		req.ScheduleSlotID = ptr.Ptr(int64(7))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, slot.Date, resp.Date)
		assert.Equal(t, types.TimeString("13:00"), resp.Time)
		assert.Equal(t, []int64{7}, schedRepo.claimed)
	})

	t.Run("unknown slot id", func(t *testing.T) {
		schedRepo := &mockScheduleRepository{getErr: scheduleRepo.ErrSlotNotFound}
		uc := newUseCaseForTest(&mockReservationRepository{}, schedRepo, &mockNotifier{}, &mockPinger{})

		req := validRequest()
		req.ScheduleSlotID = ptr.Ptr(int64(99))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("slot already booked", func(t *testing.T) {
		booked := *slot
		booked.IsBooked = true
		schedRepo := &mockScheduleRepository{slot: &booked}
		uc := newUseCaseForTest(&mockReservationRepository{}, schedRepo, &mockNotifier{}, &mockPinger{})

		req := validRequest()
		req.ScheduleSlotID = ptr.Ptr(int64(7))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestUseCase_Execute_Degraded(t *testing.T) {
	t.Run("unhealthy storage yields provisional reservation", func(t *testing.T) {
		notifier := &mockNotifier{}
		pinger := &mockPinger{err: errors.New("dial tcp: connection refused")}
		uc := newUseCaseForTest(&mockReservationRepository{}, &mockScheduleRepository{}, notifier, pinger)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Zero(t, resp.ID)
		assert.NotEmpty(t, resp.ConfirmationCode)
		assert.False(t, resp.Booked)
		assert.True(t, resp.Provisional)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, mailer.KindEmergency, notifier.sent[0].Kind)
	})

	t.Run("slot reference cannot be resolved without storage", func(t *testing.T) {
		pinger := &mockPinger{err: errors.New("dial tcp: connection refused")}
		uc := newUseCaseForTest(&mockReservationRepository{}, &mockScheduleRepository{}, &mockNotifier{}, pinger)

		req := validRequest()
		req.ScheduleSlotID = ptr.Ptr(int64(7))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("emergency email failure does not break the provisional result", func(t *testing.T) {
		notifier := &mockNotifier{sendErr: mailer.ErrSendFailed}
		pinger := &mockPinger{err: errors.New("dial tcp: connection refused")}
		uc := newUseCaseForTest(&mockReservationRepository{}, &mockScheduleRepository{}, notifier, pinger)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.True(t, resp.Provisional)
	})
}

func TestUseCase_Execute_ConfirmationEmailFailureIsNonFatal(t *testing.T) {
	notifier := &mockNotifier{sendErr: mailer.ErrSendFailed}
	uc := newUseCaseForTest(&mockReservationRepository{}, &mockScheduleRepository{}, notifier, &mockPinger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Booked)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "malformed email", mutate: func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{name: "missing name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "missing service", mutate: func(r *Request) { r.Service = "" }},
		{name: "negative guests", mutate: func(r *Request) { r.Guests = -1 }},
		{name: "too many guests", mutate: func(r *Request) { r.Guests = domain.MaxGuests + 1 }},
		{name: "missing date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "invalid time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "non-positive slot id", mutate: func(r *Request) { r.ScheduleSlotID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCaseForTest(&mockReservationRepository{}, &mockScheduleRepository{}, &mockNotifier{}, &mockPinger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
