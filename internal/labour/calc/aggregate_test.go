package calc

import (
	"math/rand"
	"testing"
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantEntry struct {
	date    string
	total   string
	periods [4]string
}

func assertEntries(t *testing.T, want []wantEntry, got []domain.LabourEntry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.date, got[i].Date, "entry %d date", i)
		assert.Equal(t, w.total, got[i].Total.String(), "entry %d total", i)
		for _, p := range domain.Periods() {
			assert.Equal(t, w.periods[p], got[i].Periods.Get(p).String(), "entry %d %s", i, p.Key())
		}
	}
}

func TestBuildEntries_SingleMorningShift(t *testing.T) {
	got := BuildEntries(ts(t, "2024-01-01 09:00:00"), ts(t, "2024-01-01 11:30:00"), false)

	assertEntries(t, []wantEntry{
		{date: "2024-01-01", total: "2.5", periods: [4]string{"2.5", "0.0", "0.0", "0.0"}},
	}, got)
}

func TestBuildEntries_Overnight(t *testing.T) {
	got := BuildEntries(ts(t, "2024-01-01 22:00:00"), ts(t, "2024-01-02 02:00:00"), false)

	assertEntries(t, []wantEntry{
		{date: "2024-01-01", total: "2.0", periods: [4]string{"0.0", "0.0", "1.0", "1.0"}},
		{date: "2024-01-02", total: "2.0", periods: [4]string{"0.0", "0.0", "0.0", "2.0"}},
	}, got)
}

func TestBuildEntries_FullDaysEndingAtMidnight(t *testing.T) {
	start := ts(t, "2024-01-01 00:00:00")
	end := ts(t, "2024-01-03 00:00:00")
	fullDay := [4]string{"7.0", "6.0", "5.0", "6.0"}

	t.Run("empty segment omitted", func(t *testing.T) {
		assertEntries(t, []wantEntry{
			{date: "2024-01-01", total: "24.0", periods: fullDay},
			{date: "2024-01-02", total: "24.0", periods: fullDay},
		}, BuildEntries(start, end, false))
	})

	t.Run("empty segment kept", func(t *testing.T) {
		assertEntries(t, []wantEntry{
			{date: "2024-01-01", total: "24.0", periods: fullDay},
			{date: "2024-01-02", total: "24.0", periods: fullDay},
			{date: "2024-01-03", total: "0.0", periods: [4]string{"0.0", "0.0", "0.0", "0.0"}},
		}, BuildEntries(start, end, true))
	})
}

func TestBuildEntries_ClockInAtLastSecondOfDay(t *testing.T) {
	start := ts(t, "2024-01-01 23:59:59")
	end := ts(t, "2024-01-02 01:00:00")
	want := []wantEntry{
		{date: "2024-01-01", total: "0.0", periods: [4]string{"0.0", "0.0", "0.0", "0.0"}},
		{date: "2024-01-02", total: "1.0", periods: [4]string{"0.0", "0.0", "0.0", "1.0"}},
	}

	assertEntries(t, want, BuildEntries(start, end, false))
	assertEntries(t, want, BuildEntries(start, end, true))
}

func TestBuildEntries_LastSecondOfDayToMidnight(t *testing.T) {
	start := ts(t, "2024-01-01 23:59:59")
	end := ts(t, "2024-01-02 00:00:00")
	leading := wantEntry{date: "2024-01-01", total: "0.0", periods: [4]string{"0.0", "0.0", "0.0", "0.0"}}
	trailing := wantEntry{date: "2024-01-02", total: "0.0", periods: [4]string{"0.0", "0.0", "0.0", "0.0"}}

	assertEntries(t, []wantEntry{leading}, BuildEntries(start, end, false))
	assertEntries(t, []wantEntry{leading, trailing}, BuildEntries(start, end, true))
}

func TestAccumulate_StepCreditedToStartingHour(t *testing.T) {
	got := HoursPerPeriod(Segment{Start: ts(t, "2024-01-01 11:30:00"), End: ts(t, "2024-01-01 12:30:00")})

	assert.Equal(t, "1.0", got.Get(domain.Morning).String())
	assert.True(t, got.Get(domain.Afternoon).IsZero())
}

func TestAccumulate_AddsIntoExistingTotals(t *testing.T) {
	var acc domain.PeriodHours
	Accumulate(&acc, Segment{Start: ts(t, "2024-01-01 06:00:00"), End: ts(t, "2024-01-01 08:00:00")})
	Accumulate(&acc, Segment{Start: ts(t, "2024-01-01 10:00:00"), End: ts(t, "2024-01-01 10:45:00")})

	assert.True(t, acc.Get(domain.Morning).Equal(domain.MustHours("2.8")))
}

func TestAccumulate_EmptySegment(t *testing.T) {
	midnight := ts(t, "2024-01-03 00:00:00")
	got := HoursPerPeriod(Segment{Start: midnight, End: midnight})
	assert.True(t, got.Total().IsZero())
}

func TestBuildEntries_PeriodsSumToTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(20240101))
	base := ts(t, "2024-01-01 00:00:00")
	tolerance := domain.MustHours("0.1")

	for i := 0; i < 500; i++ {
		start := base.Add(time.Duration(rng.Int63n(int64(72 * time.Hour))))
		end := start.Add(time.Duration(rng.Int63n(int64(60*time.Hour))) + time.Second)

		for _, entry := range BuildEntries(start, end, false) {
			diff := entry.Periods.Total().Sub(entry.Total).Abs()
			assert.False(t, diff.GreaterThan(tolerance),
				"%s..%s on %s: periods %s vs total %s", start, end, entry.Date, entry.Periods.Total(), entry.Total)
			assert.False(t, entry.Total.GreaterThan(domain.MustHours("24")))
		}
	}
}

func TestBuildEntries_DayLongShiftMatchesWallClock(t *testing.T) {
	start := ts(t, "2024-01-01 08:00:00")
	end := start.Add(24 * time.Hour)

	entries := BuildEntries(start, end, false)
	require.Len(t, entries, 2)

	var total domain.Hours
	for _, e := range entries {
		total = total.Add(e.Total)
	}

	diff := total.Sub(domain.MustHours("24")).Abs()
	assert.False(t, diff.GreaterThan(domain.MustHours("0.2")), "total %s", total)
}
