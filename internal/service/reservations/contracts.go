package reservations

import (
	"context"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByIDAndEmail(ctx context.Context, id int64, email string) (*domain.Reservation, error)
	List(ctx context.Context, date *time.Time) ([]*domain.Reservation, error)
	ExistsBookedAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
	Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
	Claim(ctx context.Context, id int64) error
}

// Notifier интерфейс для отправки транзакционных писем
type Notifier interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
