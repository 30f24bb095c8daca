// Package calc turns clock intervals into rounded labour hours split by
// calendar day and time-of-day period.
package calc

import (
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/shopspring/decimal"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// HoursBetween returns the hours from start to end, rounded half to even
// at one decimal. The division is exact, so a duration of precisely
// x.x5 hours always hits the tie rule. A non-positive interval yields 0.
func HoursBetween(start, end time.Time) domain.Hours {
	if !end.After(start) {
		return domain.Hours{}
	}

	nanos := decimal.NewFromInt(end.Sub(start).Nanoseconds())
	return domain.NewHours(nanos.Div(nanosPerHour)).Round()
}
