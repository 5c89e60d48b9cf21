package domain

import (
	"time"

	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// ScheduleSlot is a bookable (date, time) unit persisted as its own record.
// At most one reservation may hold a slot's ID while IsBooked is set.
type ScheduleSlot struct {
	ID       int64
	Date     time.Time
	TimeSlot types.TimeString
	IsBooked bool
}

// AvailableSlot is one entry of the derived availability view for a date.
// It is recomputed on every read and never persisted.
type AvailableSlot struct {
	ID       string
	Date     time.Time
	Day      string
	TimeSlot types.TimeString
	Booked   bool
}
