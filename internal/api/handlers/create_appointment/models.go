package create_appointment

import (
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	createReservation "github.com/lamesa/LaMesa-ReservationService/internal/usecase/create_reservation"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerEmail  string  `json:"customer_email"`
	CustomerName   string  `json:"customer_name"`
	Guests         int     `json:"guests"`
	Service        string  `json:"service"`
	Notes          *string `json:"notes,omitempty"`
	Date           string  `json:"date"` // "2025-10-15"
	Time           string  `json:"time"` // "20:30"
	ScheduleSlotID *int64  `json:"scheduleSlotId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64   `json:"id,omitempty"`
	ConfirmationCode string  `json:"confirmationCode"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerName     string  `json:"customer_name"`
	Guests           int     `json:"guests"`
	Service          string  `json:"service"`
	Notes            *string `json:"notes,omitempty"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	ScheduleSlotID   *int64  `json:"scheduleSlotId,omitempty"`
	Booked           bool    `json:"booked"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// CreateAppointmentResponse конверт успешного ответа
// Provisional выставляется только на degraded-пути
type CreateAppointmentResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Provisional bool                 `json:"provisional,omitempty"`
	Appointment *AppointmentResponse `json:"appointment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	req := &createReservation.Request{
		CustomerEmail:  r.CustomerEmail,
		CustomerName:   r.CustomerName,
		Guests:         r.Guests,
		Service:        r.Service,
		Notes:          r.Notes,
		ScheduleSlotID: r.ScheduleSlotID,
	}

	// При брони по ссылке на слот дата и время разрешаются из расписания
	if r.ScheduleSlotID != nil {
		return req, nil
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	req.Date = date
	req.StartTime = startTime
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, message string) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Success:     true,
		Message:     message,
		Provisional: resp.Provisional,
		Appointment: &AppointmentResponse{
			ID:               resp.ID,
			ConfirmationCode: resp.ConfirmationCode,
			CustomerEmail:    resp.CustomerEmail,
			CustomerName:     resp.CustomerName,
			Guests:           resp.Guests,
			Service:          resp.Service,
			Notes:            resp.Notes,
			Date:             resp.Date.Format(domain.DateFormat),
			Time:             resp.Time.String(),
			ScheduleSlotID:   resp.ScheduleSlotID,
			Booked:           resp.Booked,
			CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
			UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
		},
	}
}
