package domain

import "time"

const (
	// TimestampLayout is the clock datetime format, e.g. 2023-01-01 09:30:00
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the entry date format
	DateLayout = "2006-01-02"
)

// ParseTimestamp parses a clock datetime. Timestamps carry no zone and are
// read as UTC so that every day is exactly 24 hours long.
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, value, time.UTC)
}

// FormatDate formats the calendar date of t
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
