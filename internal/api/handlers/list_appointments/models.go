package list_appointments

import "github.com/lamesa/LaMesa-ReservationService/internal/service/reservations/models"

// ListAppointmentsResponse HTTP response model
type ListAppointmentsResponse struct {
	Success      bool                          `json:"success"`
	Appointments []*models.ReservationResponse `json:"appointments"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationListResponse) *ListAppointmentsResponse {
	return &ListAppointmentsResponse{
		Success:      true,
		Appointments: resp.Reservations,
	}
}
