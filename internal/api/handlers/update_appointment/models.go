package update_appointment

import "github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"

// UpdateAppointmentResponse конверт успешного ответа
type UpdateAppointmentResponse struct {
	Success     bool                        `json:"success"`
	Appointment *models.ReservationResponse `json:"appointment"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *UpdateAppointmentResponse {
	return &UpdateAppointmentResponse{
		Success:     true,
		Appointment: resp,
	}
}
