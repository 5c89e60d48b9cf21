package domain

import (
	"time"

	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// Reservation represents a confirmed table booking.
// A reservation is always addressed by (ID, CustomerEmail) for any later
// mutation; the email match is the only authorization the system performs.
type Reservation struct {
	ID               int64
	ConfirmationCode string

	CustomerEmail string
	CustomerName  string
	Guests        int
	Service       string
	Notes         *string

	Date time.Time
	Time types.TimeString

	// ScheduleSlotID links the reservation to a persisted schedule slot
	// when the booking was made by slot reference rather than by raw
	// date/time. Nil for direct bookings.
	ScheduleSlotID *int64

	Booked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLinkedToSlot reports whether the reservation holds a schedule slot.
func (r *Reservation) IsLinkedToSlot() bool {
	return r.ScheduleSlotID != nil
}

// OccupiesSameSlot reports whether the reservation blocks the given
// date/time pair. Only booked reservations occupy slots.
func (r *Reservation) OccupiesSameSlot(date time.Time, t types.TimeString) bool {
	if !r.Booked {
		return false
	}
	y1, m1, d1 := r.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && r.Time == t
}

// ReservationPatch describes a partial update applied after authorization.
// Nil fields are left untouched.
type ReservationPatch struct {
	Service        *string
	Notes          *string
	Date           *time.Time
	Time           *types.TimeString
	ScheduleSlotID *int64
}

// ChangesSlot reports whether the patch moves the reservation to another
// date, time or schedule slot, which requires an availability re-check.
func (p *ReservationPatch) ChangesSlot() bool {
	return p.Date != nil || p.Time != nil || p.ScheduleSlotID != nil
}

// IsEmpty reports whether the patch contains no changes at all.
func (p *ReservationPatch) IsEmpty() bool {
	return p.Service == nil && p.Notes == nil && !p.ChangesSlot()
}
