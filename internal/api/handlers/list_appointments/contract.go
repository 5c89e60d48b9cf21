package list_appointments

import (
	"context"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	List(ctx context.Context, date *time.Time) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
