package reservations

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	reservationRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/schedule"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"
	"github.com/lamesa/LaMesa-ReservationService/pkg/ptr"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

type mockReservationRepository struct {
	byIDAndEmail map[string]*domain.Reservation
	listResult   []*domain.Reservation
	listErr      error
	existsBooked bool
	existsErr    error
	updateResult *domain.Reservation
	updateErr    error
	deleteErr    error
	deletedIDs   []int64
	lastPatch    domain.ReservationPatch
}

func key(id int64, email string) string {
	return fmt.Sprintf("%d|%s", id, email)
}

func (m *mockReservationRepository) GetByIDAndEmail(ctx context.Context, id int64, email string) (*domain.Reservation, error) {
	if res, ok := m.byIDAndEmail[key(id, email)]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepository) List(ctx context.Context, date *time.Time) ([]*domain.Reservation, error) {
	return m.listResult, m.listErr
}

func (m *mockReservationRepository) ExistsBookedAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	return m.existsBooked, m.existsErr
}

func (m *mockReservationRepository) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	m.lastPatch = patch
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *mockReservationRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

type mockScheduleRepository struct {
	slots     map[int64]*domain.ScheduleSlot
	released  []int64
	claimed   []int64
	claimErr  error
	setBooked error
}

func (m *mockScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error) {
	if slot, ok := m.slots[id]; ok {
		return slot, nil
	}
	return nil, scheduleRepo.ErrSlotNotFound
}

func (m *mockScheduleRepository) SetBooked(ctx context.Context, id int64, booked bool) error {
	if m.setBooked != nil {
		return m.setBooked
	}
	if !booked {
		m.released = append(m.released, id)
	}
	return nil
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

// inlineTxManager выполняет callback без настоящей транзакции
type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func existingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:               10,
		ConfirmationCode: "b7a9c3d1",
		CustomerEmail:    "ana@example.com",
		CustomerName:     "Ana García",
		Guests:           2,
		Service:          "cena",
		Date:             time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Time:             "20:30",
		Booked:           true,
		CreatedAt:        time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestService(resRepo *mockReservationRepository, schedRepo *mockScheduleRepository, notifier *mockNotifier) *Service {
	return NewService(resRepo, schedRepo, notifier, inlineTxManager{}, noopLogger{})
}

func TestService_List(t *testing.T) {
	t.Run("returns all reservations", func(t *testing.T) {
		resRepo := &mockReservationRepository{listResult: []*domain.Reservation{existingReservation()}}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		resp, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, resp.Reservations, 1)
		assert.Equal(t, "ana@example.com", resp.Reservations[0].CustomerEmail)
		assert.Equal(t, "2025-10-15", resp.Reservations[0].Date)
	})

	t.Run("storage error is not swallowed", func(t *testing.T) {
		resRepo := &mockReservationRepository{listErr: errors.New("connection refused")}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.List(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Update_Authorization(t *testing.T) {
	current := existingReservation()
	resRepo := &mockReservationRepository{
		byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		updateResult: current,
	}
	svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

	req := &models.UpdateReservationRequest{Notes: ptr.Ptr("mesa junto a la ventana")}

	t.Run("wrong email", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 10, "otro@example.com", req)
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999, "ana@example.com", req)
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	})

	t.Run("case-sensitive email match", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 10, "Ana@Example.com", req)
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	})

	t.Run("matching pair succeeds", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), 10, "ana@example.com", req)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("empty patch is rejected", func(t *testing.T) {
		svc := newTestService(&mockReservationRepository{}, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid date in patch", func(t *testing.T) {
		svc := newTestService(&mockReservationRepository{}, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			Date: ptr.Ptr("15/10/2025"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("moving to a taken slot conflicts", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
			existsBooked: true,
		}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			Time: ptr.Ptr("21:00"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("moving to a free slot sends the updated email", func(t *testing.T) {
		current := existingReservation()
		updated := *current
		updated.Time = "21:00"
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
			updateResult: &updated,
		}
		notifier := &mockNotifier{}
		svc := newTestService(resRepo, &mockScheduleRepository{}, notifier)

		resp, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			Time: ptr.Ptr("21:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "21:00", resp.Time)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, mailer.KindUpdated, notifier.sent[0].Kind)
	})

	t.Run("moving between schedule slots releases the old one and claims the new one", func(t *testing.T) {
		current := existingReservation()
		current.ScheduleSlotID = ptr.Ptr(int64(3))

		newSlot := &domain.ScheduleSlot{
			ID:       5,
			Date:     time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
			TimeSlot: "13:30",
		}

		updated := *current
		updated.ScheduleSlotID = ptr.Ptr(int64(5))
		updated.Date = newSlot.Date
		updated.Time = newSlot.TimeSlot

		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
			updateResult: &updated,
		}
		schedRepo := &mockScheduleRepository{slots: map[int64]*domain.ScheduleSlot{5: newSlot}}
		svc := newTestService(resRepo, schedRepo, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			ScheduleSlotID: ptr.Ptr(int64(5)),
		})
		require.NoError(t, err)

		assert.Equal(t, []int64{3}, schedRepo.released)
		assert.Equal(t, []int64{5}, schedRepo.claimed)
		// Дата и время брони следуют за новым слотом
		require.NotNil(t, resRepo.lastPatch.Date)
		assert.Equal(t, newSlot.Date, *resRepo.lastPatch.Date)
		require.NotNil(t, resRepo.lastPatch.Time)
		assert.Equal(t, newSlot.TimeSlot, *resRepo.lastPatch.Time)
	})

	t.Run("unknown target schedule slot", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			ScheduleSlotID: ptr.Ptr(int64(77)),
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("concurrent insert hits the unique index", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
			updateErr:    reservationRepo.ErrDuplicateSlot,
		}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			Time: ptr.Ptr("21:30"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("email failure does not undo the update", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
			updateResult: current,
		}
		notifier := &mockNotifier{sendErr: mailer.ErrSendFailed}
		svc := newTestService(resRepo, &mockScheduleRepository{}, notifier)

		_, err := svc.Update(context.Background(), 10, "ana@example.com", &models.UpdateReservationRequest{
			Notes: ptr.Ptr("sin gluten"),
		})
		assert.NoError(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("deletes and sends the cancellation email", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		}
		notifier := &mockNotifier{}
		svc := newTestService(resRepo, &mockScheduleRepository{}, notifier)

		err := svc.Delete(context.Background(), 10, "ana@example.com")
		require.NoError(t, err)

		assert.Equal(t, []int64{10}, resRepo.deletedIDs)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, mailer.KindCancelled, notifier.sent[0].Kind)
	})

	t.Run("releases the linked schedule slot", func(t *testing.T) {
		current := existingReservation()
		current.ScheduleSlotID = ptr.Ptr(int64(3))
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		}
		schedRepo := &mockScheduleRepository{}
		svc := newTestService(resRepo, schedRepo, &mockNotifier{})

		require.NoError(t, svc.Delete(context.Background(), 10, "ana@example.com"))
		assert.Equal(t, []int64{3}, schedRepo.released)
	})

	t.Run("wrong email", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		}
		svc := newTestService(resRepo, &mockScheduleRepository{}, &mockNotifier{})

		err := svc.Delete(context.Background(), 10, "otro@example.com")
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	})

	t.Run("email failure does not undo the delete", func(t *testing.T) {
		current := existingReservation()
		resRepo := &mockReservationRepository{
			byIDAndEmail: map[string]*domain.Reservation{key(10, "ana@example.com"): current},
		}
		notifier := &mockNotifier{sendErr: mailer.ErrSendFailed}
		svc := newTestService(resRepo, &mockScheduleRepository{}, notifier)

		assert.NoError(t, svc.Delete(context.Background(), 10, "ana@example.com"))
	})
}
