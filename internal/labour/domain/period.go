package domain

import "fmt"

// Period is a fixed band of the 24-hour clock
type Period int

const (
	Morning   Period = iota // [05:00, 12:00)
	Afternoon               // [12:00, 18:00)
	Evening                 // [18:00, 23:00)
	LateNight               // [23:00, 24:00) and [00:00, 05:00)
)

// PeriodCount is the number of periods in a day
const PeriodCount = 4

var periodNames = [PeriodCount]string{"Morning", "Afternoon", "Evening", "Late Night"}

// Periods returns the periods in output order
func Periods() []Period {
	return []Period{Morning, Afternoon, Evening, LateNight}
}

// ClassifyHour returns the period an hour of the day falls in.
// Hours outside 0-23 are wrapped onto the clock first.
func ClassifyHour(hour int) Period {
	hour = ((hour % 24) + 24) % 24

	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 23:
		return Evening
	default:
		return LateNight
	}
}

// String returns the human readable period name
func (p Period) String() string {
	if p < 0 || int(p) >= PeriodCount {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// Key returns the output key (period1..period4)
func (p Period) Key() string {
	return fmt.Sprintf("period%d", int(p)+1)
}
