package service_test

import (
	"testing"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/internal/labour/service"
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/aperture/labour-hours/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyClock(t *testing.T) {
	roster := service.NewRoster([]domain.Employee{testutil.Employee(1, "Ada", "")})

	tests := []struct {
		name  string
		clock domain.ClockRecord
		want  service.Disposition
	}{
		{
			name:  "valid",
			clock: testutil.Clock(1, "2024-01-01 09:00:00", "2024-01-01 17:00:00"),
			want:  service.Process,
		},
		{
			name:  "missing clock out",
			clock: testutil.Clock(1, "2024-01-01 09:00:00", ""),
			want:  service.SkipMissingData,
		},
		{
			name:  "missing clock in",
			clock: testutil.Clock(1, "", "2024-01-01 17:00:00"),
			want:  service.SkipMissingData,
		},
		{
			name:  "missing data wins over unknown employee",
			clock: testutil.Clock(99, "", ""),
			want:  service.SkipMissingData,
		},
		{
			name:  "malformed clock in",
			clock: testutil.Clock(1, "01/01/2024 09:00", "2024-01-01 17:00:00"),
			want:  service.FatalMalformedTimestamp,
		},
		{
			name:  "malformed clock out",
			clock: testutil.Clock(1, "2024-01-01 09:00:00", "2024-01-01 25:00:00"),
			want:  service.FatalMalformedTimestamp,
		},
		{
			name:  "malformed wins over unknown employee",
			clock: testutil.Clock(99, "later", "2024-01-01 17:00:00"),
			want:  service.FatalMalformedTimestamp,
		},
		{
			name:  "equal instants",
			clock: testutil.Clock(1, "2024-01-01 09:00:00", "2024-01-01 09:00:00"),
			want:  service.SkipInvertedInterval,
		},
		{
			name:  "inverted wins over unknown employee",
			clock: testutil.Clock(99, "2024-01-01 17:00:00", "2024-01-01 09:00:00"),
			want:  service.SkipInvertedInterval,
		},
		{
			name:  "unknown employee",
			clock: testutil.Clock(99, "2024-01-01 09:00:00", "2024-01-01 17:00:00"),
			want:  service.FatalUnknownEmployee,
		},
		{
			name: "string id does not match numeric id",
			clock: domain.ClockRecord{
				EmployeeID: domain.StringID("1"),
				ClockIn:    testutil.PtrString("2024-01-01 09:00:00"),
				ClockOut:   testutil.PtrString("2024-01-01 17:00:00"),
			},
			want: service.FatalUnknownEmployee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ClassifyClock(4, tt.clock, roster)
			assert.Equal(t, tt.want, got.Disposition, "got %s", got.Disposition)
			assert.Equal(t, tt.want.IsFatal(), got.Err != nil)
		})
	}
}

func TestClassifyClock_ErrorsNameTheRecord(t *testing.T) {
	roster := service.NewRoster(nil)

	malformed := service.ClassifyClock(7, testutil.Clock(1, "2024-01-01 09:00:00", "soon"), roster)
	require.NotNil(t, malformed.Err)
	assert.True(t, errors.Is(malformed.Err, errors.ErrMalformedTime))
	assert.Equal(t, "7", malformed.Err.Details["clock_index"])
	assert.Contains(t, malformed.Err.Details, "clock_out_datetime")

	unknown := service.ClassifyClock(3, testutil.Clock(42, "2024-01-01 09:00:00", "2024-01-01 10:00:00"), roster)
	require.NotNil(t, unknown.Err)
	assert.Equal(t, "UNKNOWN_EMPLOYEE", unknown.Err.Code)
	assert.Equal(t, "42", unknown.Err.Details["employee_id"])
	assert.Equal(t, "3", unknown.Err.Details["clock_index"])
}

func TestDisposition_String(t *testing.T) {
	assert.Equal(t, "process", service.Process.String())
	assert.Equal(t, "skip_inverted_interval", service.SkipInvertedInterval.String())
	assert.Equal(t, "unknown", service.Disposition(42).String())
	assert.False(t, service.SkipMissingData.IsFatal())
}

func TestRoster(t *testing.T) {
	roster := service.NewRoster([]domain.Employee{
		testutil.Employee(2, "Grace", "Hopper"),
		testutil.Employee(1, "Ada", ""),
		testutil.Employee(2, "G.", ""),
	})

	assert.Equal(t, []domain.EmployeeID{domain.NumericID(2)}, roster.Duplicates())
	assert.True(t, roster.Has(domain.NumericID(1)))
	assert.False(t, roster.Has(domain.NumericID(3)))

	roster.Append(domain.NumericID(1), domain.LabourEntry{Date: "2024-01-01"})
	roster.Append(domain.NumericID(3), domain.LabourEntry{Date: "2024-01-01"})

	summaries := roster.Summaries()
	require.Len(t, summaries, 2)

	assert.Equal(t, domain.NumericID(2), summaries[0].EmployeeID)
	require.NotNil(t, summaries[0].FirstName)
	assert.Equal(t, "G.", *summaries[0].FirstName)
	assert.Nil(t, summaries[0].LastName)
	assert.Empty(t, summaries[0].Labour)
	assert.NotNil(t, summaries[0].Labour)

	assert.Equal(t, domain.NumericID(1), summaries[1].EmployeeID)
	assert.Len(t, summaries[1].Labour, 1)
}
