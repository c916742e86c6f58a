package timefmt

import (
	"strconv"
	"strings"
	"time"
)

const (
	daysUnitLabelConstant      = "days"
	hoursUnitLabelConstant     = "h"
	minutesUnitLabelConstant   = "m"
	secondsUnitLabelConstant   = "s"
	unitSeparatorConstant      = " "
	secondsPerMinuteConstant   = 60
	secondsPerHourConstant     = 60 * secondsPerMinuteConstant
	secondsPerDayConstant      = 24 * secondsPerHourConstant
	zeroDurationOutputConstant = "0" + secondsUnitLabelConstant
)

type durationUnit struct {
	label   string
	seconds int64
}

var durationUnits = []durationUnit{
	{label: daysUnitLabelConstant, seconds: secondsPerDayConstant},
	{label: hoursUnitLabelConstant, seconds: secondsPerHourConstant},
	{label: minutesUnitLabelConstant, seconds: secondsPerMinuteConstant},
	{label: secondsUnitLabelConstant, seconds: 1},
}

// FormatDuration renders the duration from the largest unit down to seconds.
// Leading zero units are omitted, inner zero units are kept, and the value is
// truncated to whole seconds. Negative durations render as "0s".
func FormatDuration(duration time.Duration) string {
	totalSeconds := int64(duration / time.Second)
	if totalSeconds <= 0 {
		return zeroDurationOutputConstant
	}

	var segments []string
	remainingSeconds := totalSeconds
	for _, unit := range durationUnits {
		unitCount := remainingSeconds / unit.seconds
		remainingSeconds -= unitCount * unit.seconds
		if unitCount == 0 && len(segments) == 0 {
			continue
		}
		segments = append(segments, strconv.FormatInt(unitCount, 10)+unit.label)
	}

	return strings.Join(segments, unitSeparatorConstant)
}
