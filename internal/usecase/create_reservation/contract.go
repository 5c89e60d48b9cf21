package create_reservation

import (
	"context"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ExistsBookedAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
}

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error)
	Claim(ctx context.Context, id int64) error
}

// Notifier интерфейс отправки транзакционных писем
// Ошибки отправки логируются и никогда не меняют результат бронирования
type Notifier interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// StoragePinger интерфейс проверки доступности хранилища
// Используется для health-пробы перед приёмом записи (degraded-режим)
type StoragePinger interface {
	PingContext(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
