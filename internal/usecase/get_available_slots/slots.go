package get_available_slots

import (
	"fmt"
	"time"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// generateTimeSlots строит каноничный список времён на дату по политике
// расписания: фиксированный список либо почасовая сетка [open, close)
func generateTimeSlots(policy *domain.SchedulePolicy) []types.TimeString {
	if policy.Mode == domain.PolicyFixed {
		slots := make([]types.TimeString, len(policy.FixedTimes))
		copy(slots, policy.FixedTimes)
		return slots
	}

	slots := make([]types.TimeString, 0, policy.CloseHour-policy.OpenHour)
	for hour := policy.OpenHour; hour < policy.CloseHour; hour++ {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:00", hour)))
	}
	return slots
}

// subtractBooked убирает из каноничного списка занятые времена
func subtractBooked(all []types.TimeString, booked []types.TimeString) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(all))
	for _, t := range all {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}
	return free
}

// dayLabel возвращает испанское название дня недели в нижнем регистре
func dayLabel(date time.Time) string {
	return domain.SpanishWeekdays[int(date.Weekday())]
}
