package domain

import (
	"fmt"

	"github.com/lamesa/LaMesa-ReservationService/pkg/types"
)

// SchedulePolicyMode selects how the canonical slot list is produced.
type SchedulePolicyMode string

const (
	// PolicyFixed enumerates an explicit list of HH:MM labels.
	PolicyFixed SchedulePolicyMode = "fixed"
	// PolicyHourly generates hourly labels in [OpenHour, CloseHour).
	PolicyHourly SchedulePolicyMode = "hourly"
)

// SchedulePolicy is the static schedule definition the slot generator works
// from. It does not vary per date; closures and holidays are out of scope.
type SchedulePolicy struct {
	Mode       SchedulePolicyMode
	FixedTimes []types.TimeString
	OpenHour   int
	CloseHour  int
}

// NewFixedPolicy builds a fixed-list policy, validating every label.
func NewFixedPolicy(labels []string) (SchedulePolicy, error) {
	times := make([]types.TimeString, 0, len(labels))
	for _, label := range labels {
		ts, err := types.NewTimeStringFromString(label)
		if err != nil {
			return SchedulePolicy{}, fmt.Errorf("schedule policy: %w", err)
		}
		times = append(times, ts)
	}
	return SchedulePolicy{Mode: PolicyFixed, FixedTimes: times}, nil
}

// NewHourlyPolicy builds an hourly-range policy.
func NewHourlyPolicy(openHour, closeHour int) (SchedulePolicy, error) {
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return SchedulePolicy{}, fmt.Errorf("schedule policy: invalid hourly range %d-%d", openHour, closeHour)
	}
	return SchedulePolicy{Mode: PolicyHourly, OpenHour: openHour, CloseHour: closeHour}, nil
}
