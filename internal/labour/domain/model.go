package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// EmployeeID holds an employee identifier as its canonical JSON token, so
// a numeric id 7 and a string id "7" stay distinct and are written back in
// the form they arrived in. The empty value means the id was missing.
type EmployeeID string

// StringID builds an EmployeeID from a string identifier
func StringID(s string) EmployeeID {
	b, _ := json.Marshal(s)
	return EmployeeID(b)
}

// NumericID builds an EmployeeID from a numeric identifier
func NumericID(n int64) EmployeeID {
	return EmployeeID(strconv.FormatInt(n, 10))
}

// IsZero reports whether the id was missing from the input
func (id EmployeeID) IsZero() bool {
	return id == ""
}

// IsNumeric reports whether the id was given as a JSON number
func (id EmployeeID) IsNumeric() bool {
	return id != "" && id[0] != '"'
}

// String returns the id as plain text, without JSON quoting
func (id EmployeeID) String() string {
	if id.IsNumeric() || id.IsZero() {
		return string(id)
	}
	var s string
	if err := json.Unmarshal([]byte(id), &s); err != nil {
		return string(id)
	}
	return s
}

// MarshalJSON writes the id back as a number or a string
func (id EmployeeID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// UnmarshalJSON accepts a JSON string or number. null leaves the id empty.
func (id *EmployeeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid employee id: %w", err)
		}
		*id = StringID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("employee id must be a string or a number, got %s", data)
		}
		*id = EmployeeID(n.String())
		return nil
	}
}

// Employee is a person whose clock records are summarized
type Employee struct {
	ID        EmployeeID `json:"id" validate:"required"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
}

// ClockRecord is one clock-in/clock-out pair. Either instant may be absent.
type ClockRecord struct {
	EmployeeID EmployeeID `json:"employee_id"`
	ClockIn    *string    `json:"clock_in_datetime"`
	ClockOut   *string    `json:"clock_out_datetime"`
}

// Document is a whole batch input
type Document struct {
	Employees []Employee    `json:"employees" validate:"dive"`
	Clocks    []ClockRecord `json:"clocks"`
}

// LabourEntry is the worked time of one calendar-day segment
type LabourEntry struct {
	Date    string          `json:"date"`
	Total   Hours           `json:"total"`
	Periods PeriodBreakdown `json:"labour_by_time_period"`
}

// EmployeeSummary is the output record of one employee
type EmployeeSummary struct {
	EmployeeID EmployeeID    `json:"employee_id"`
	FirstName  *string       `json:"first_name"`
	LastName   *string       `json:"last_name"`
	Labour     []LabourEntry `json:"labour"`
}

// RunStats counts how the clock records of a run were handled
type RunStats struct {
	Clocks                 int `json:"clocks"`
	Processed              int `json:"processed"`
	SkippedMissingData     int `json:"skipped_missing_data"`
	SkippedInverted        int `json:"skipped_inverted_interval"`
	SkippedUnknownEmployee int `json:"skipped_unknown_employee"`
	Entries                int `json:"entries"`
}

// Skipped returns the number of clock records that produced nothing
func (s RunStats) Skipped() int {
	return s.SkippedMissingData + s.SkippedInverted + s.SkippedUnknownEmployee
}

// Run is the result of processing one document
type Run struct {
	ID          string            `json:"run_id"`
	ProcessedAt time.Time         `json:"processed_at"`
	Employees   []EmployeeSummary `json:"employees"`
	Stats       RunStats          `json:"stats"`
}
