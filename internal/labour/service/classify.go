package service

import (
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/pkg/errors"
)

// Disposition is the decision taken for one clock record
type Disposition int

const (
	Process Disposition = iota
	SkipMissingData
	SkipInvertedInterval
	FatalUnknownEmployee
	FatalMalformedTimestamp
)

func (d Disposition) String() string {
	switch d {
	case Process:
		return "process"
	case SkipMissingData:
		return "skip_missing_data"
	case SkipInvertedInterval:
		return "skip_inverted_interval"
	case FatalUnknownEmployee:
		return "fatal_unknown_employee"
	case FatalMalformedTimestamp:
		return "fatal_malformed_timestamp"
	default:
		return "unknown"
	}
}

// IsFatal reports whether the disposition aborts the batch by default
func (d Disposition) IsFatal() bool {
	return d == FatalUnknownEmployee || d == FatalMalformedTimestamp
}

// Classification is the outcome of ClassifyClock. ClockIn and ClockOut are
// set for Process and SkipInvertedInterval, Err for the fatal dispositions.
type Classification struct {
	Disposition Disposition
	ClockIn     time.Time
	ClockOut    time.Time
	Err         *errors.AppError
}

// EmployeeLookup reports whether an employee id is known
type EmployeeLookup interface {
	Has(id domain.EmployeeID) bool
}

// ClassifyClock decides what to do with the clock record at index.
//
// Checks run in order: a missing instant skips the record, an unparseable
// instant is fatal, a clock-out not after the clock-in skips the record,
// and only then is the employee looked up.
func ClassifyClock(index int, clock domain.ClockRecord, employees EmployeeLookup) Classification {
	if isMissing(clock.ClockIn) || isMissing(clock.ClockOut) {
		return Classification{Disposition: SkipMissingData}
	}

	in, err := domain.ParseTimestamp(*clock.ClockIn)
	if err != nil {
		return Classification{
			Disposition: FatalMalformedTimestamp,
			Err:         errors.MalformedTimestamp(index, "clock_in_datetime", *clock.ClockIn, err),
		}
	}

	out, err := domain.ParseTimestamp(*clock.ClockOut)
	if err != nil {
		return Classification{
			Disposition: FatalMalformedTimestamp,
			Err:         errors.MalformedTimestamp(index, "clock_out_datetime", *clock.ClockOut, err),
		}
	}

	if !in.Before(out) {
		return Classification{Disposition: SkipInvertedInterval, ClockIn: in, ClockOut: out}
	}

	if !employees.Has(clock.EmployeeID) {
		return Classification{
			Disposition: FatalUnknownEmployee,
			ClockIn:     in,
			ClockOut:    out,
			Err:         errors.UnknownEmployee(index, clock.EmployeeID.String()),
		}
	}

	return Classification{Disposition: Process, ClockIn: in, ClockOut: out}
}

func isMissing(instant *string) bool {
	return instant == nil || *instant == ""
}
