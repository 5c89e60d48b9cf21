package update_appointment

import (
	"context"

	"github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	Update(ctx context.Context, id int64, email string, req *models.UpdateReservationRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
