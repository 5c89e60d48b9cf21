package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

func TestGenerateTimeSlots_Fixed(t *testing.T) {
	policy, err := domain.NewFixedPolicy([]string{"12:00", "12:30", "22:30"})
	require.NoError(t, err)

	got := generateTimeSlots(&policy)
	assert.Equal(t, []types.TimeString{"12:00", "12:30", "22:30"}, got)
}

func TestGenerateTimeSlots_Hourly(t *testing.T) {
	policy, err := domain.NewHourlyPolicy(10, 14)
	require.NoError(t, err)

	got := generateTimeSlots(&policy)
	assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00", "13:00"}, got)
}

func TestSubtractBooked(t *testing.T) {
	all := []types.TimeString{"12:00", "12:30", "13:00", "13:30"}

	tests := []struct {
		name   string
		booked []types.TimeString
		want   []types.TimeString
	}{
		{
			name:   "nothing booked",
			booked: nil,
			want:   []types.TimeString{"12:00", "12:30", "13:00", "13:30"},
		},
		{
			name:   "some booked",
			booked: []types.TimeString{"12:30", "13:30"},
			want:   []types.TimeString{"12:00", "13:00"},
		},
		{
			name:   "everything booked",
			booked: []types.TimeString{"12:00", "12:30", "13:00", "13:30"},
			want:   []types.TimeString{},
		},
		{
			name:   "booked time outside canonical list is ignored",
			booked: []types.TimeString{"09:00"},
			want:   []types.TimeString{"12:00", "12:30", "13:00", "13:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtractBooked(all, tt.booked))
		})
	}
}

func TestDayLabel(t *testing.T) {
	// 2025-10-15 - среда
	assert.Equal(t, "miércoles", dayLabel(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
	// 2025-10-19 - воскресенье
	assert.Equal(t, "domingo", dayLabel(time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)))
}
