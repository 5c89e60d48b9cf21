package get_available_slots

import (
	"context"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	// GetBookedTimes получает времена активных броней на дату
	GetBookedTimes(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
