package calc

import (
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
)

// Segment is a part of a clock interval that lies within one calendar day
type Segment struct {
	Start time.Time
	End   time.Time
}

// Date returns the calendar date of the segment
func (s Segment) Date() string {
	return domain.FormatDate(s.Start)
}

// Empty reports whether the segment has no duration
func (s Segment) Empty() bool {
	return !s.Start.Before(s.End)
}

// Hours returns the rounded duration of the segment
func (s Segment) Hours() domain.Hours {
	return HoursBetween(s.Start, s.End)
}

// SplitIntoDays cuts [start, end] at calendar-day boundaries.
//
// An interval within one date comes back unchanged. Otherwise the first
// segment closes at 23:59:59 of the start date, every date strictly in
// between is covered by a 00:00:00-23:59:59 segment, and the last segment
// opens at 00:00:00 of the end date. A last segment may be empty when end
// is exactly midnight. Callers are expected to pass start < end.
func SplitIntoDays(start, end time.Time) []Segment {
	firstDay := startOfDay(start)
	lastDay := startOfDay(end)

	if !lastDay.After(firstDay) {
		return []Segment{{Start: start, End: end}}
	}

	segments := []Segment{{Start: start, End: endOfDay(firstDay)}}
	for day := firstDay.AddDate(0, 0, 1); day.Before(lastDay); day = day.AddDate(0, 0, 1) {
		segments = append(segments, Segment{Start: day, End: endOfDay(day)})
	}

	return append(segments, Segment{Start: lastDay, End: end})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, day.Location())
}
