package get_schedules

import (
	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	getAvailableSlots "github.com/lamesa/LaMesa-ReservationService/internal/usecase/get_available_slots"
)

// ScheduleResponse представление одного доступного слота для календаря
type ScheduleResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Day      string `json:"day"`
	TimeSlot string `json:"time_slot"`
	Booked   bool   `json:"booked"`
}

// GetSchedulesResponse конверт успешного ответа
type GetSchedulesResponse struct {
	Success   bool                `json:"success"`
	Schedules []*ScheduleResponse `json:"schedules"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetSchedulesResponse {
	schedules := make([]*ScheduleResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		schedules = append(schedules, &ScheduleResponse{
			ID:       slot.ID,
			Date:     slot.Date.Format(domain.DateFormat),
			Day:      slot.Day,
			TimeSlot: slot.TimeSlot.String(),
			Booked:   slot.Booked,
		})
	}
	return &GetSchedulesResponse{
		Success:   true,
		Schedules: schedules,
	}
}
