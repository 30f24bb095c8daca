package calc

import (
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
)

// Accumulate walks a segment in one-hour steps from its start and adds each
// step's rounded duration to the period of the hour the step starts in.
// A step that straddles a period boundary is credited wholly to the period
// it starts in. The last step is truncated at the segment end.
func Accumulate(acc *domain.PeriodHours, seg Segment) {
	for cursor := seg.Start; cursor.Before(seg.End); {
		next := cursor.Add(time.Hour)
		if next.After(seg.End) {
			next = seg.End
		}

		acc.Add(domain.ClassifyHour(cursor.Hour()), HoursBetween(cursor, next))
		cursor = next
	}
}

// HoursPerPeriod returns the per-period hours of one segment
func HoursPerPeriod(seg Segment) domain.PeriodHours {
	var acc domain.PeriodHours
	Accumulate(&acc, seg)
	return acc
}

// BuildEntry computes the labour entry of one segment. The total is the
// rounded segment duration, computed separately from the period split.
func BuildEntry(seg Segment) domain.LabourEntry {
	return domain.LabourEntry{
		Date:    seg.Date(),
		Total:   seg.Hours(),
		Periods: HoursPerPeriod(seg).Breakdown(),
	}
}

// BuildEntries splits a clock interval into days and builds an entry for
// every segment. The trailing segment of an interval ending exactly at
// midnight is empty and dropped unless keepEmpty is set. A leading empty
// segment, from a clock-in at 23:59:59, is always kept.
func BuildEntries(start, end time.Time, keepEmpty bool) []domain.LabourEntry {
	segments := SplitIntoDays(start, end)
	entries := make([]domain.LabourEntry, 0, len(segments))

	for i, seg := range segments {
		if i > 0 && i == len(segments)-1 && seg.Empty() && !keepEmpty {
			continue
		}
		entries = append(entries, BuildEntry(seg))
	}

	return entries
}
