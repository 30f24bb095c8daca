package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHour(t *testing.T) {
	tests := []struct {
		hour int
		want Period
	}{
		{0, LateNight},
		{4, LateNight},
		{5, Morning},
		{11, Morning},
		{12, Afternoon},
		{17, Afternoon},
		{18, Evening},
		{22, Evening},
		{23, LateNight},
		{24, LateNight},
		{29, Morning},
		{-1, LateNight},
		{-19, Morning},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestClassifyHour_EveryHourHasOnePeriod(t *testing.T) {
	counts := map[Period]int{}
	for h := 0; h < 24; h++ {
		counts[ClassifyHour(h)]++
	}

	assert.Equal(t, 7, counts[Morning])
	assert.Equal(t, 6, counts[Afternoon])
	assert.Equal(t, 5, counts[Evening])
	assert.Equal(t, 6, counts[LateNight])
}

func TestPeriod_NamesAndKeys(t *testing.T) {
	keys := make([]string, 0, PeriodCount)
	names := make([]string, 0, PeriodCount)
	for _, p := range Periods() {
		keys = append(keys, p.Key())
		names = append(names, p.String())
	}

	assert.Equal(t, []string{"period1", "period2", "period3", "period4"}, keys)
	assert.Equal(t, []string{"Morning", "Afternoon", "Evening", "Late Night"}, names)
	assert.Equal(t, "Period(9)", Period(9).String())
}
