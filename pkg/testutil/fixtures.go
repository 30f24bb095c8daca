package testutil

import (
	"github.com/aperture/labour-hours/internal/labour/domain"
)

// Employee builds an employee with a numeric id. Empty names become null.
func Employee(id int64, first, last string) domain.Employee {
	return domain.Employee{
		ID:        domain.NumericID(id),
		FirstName: optional(first),
		LastName:  optional(last),
	}
}

// Clock builds a clock record for a numeric employee id. An empty instant
// becomes null.
func Clock(employeeID int64, in, out string) domain.ClockRecord {
	return domain.ClockRecord{
		EmployeeID: domain.NumericID(employeeID),
		ClockIn:    optional(in),
		ClockOut:   optional(out),
	}
}

// DocumentBuilder assembles batch documents for tests
type DocumentBuilder struct {
	doc domain.Document
}

// NewDocument starts an empty document
func NewDocument() *DocumentBuilder {
	return &DocumentBuilder{}
}

// WithEmployee appends an employee
func (b *DocumentBuilder) WithEmployee(id int64, first, last string) *DocumentBuilder {
	b.doc.Employees = append(b.doc.Employees, Employee(id, first, last))
	return b
}

// WithClock appends a clock record
func (b *DocumentBuilder) WithClock(employeeID int64, in, out string) *DocumentBuilder {
	b.doc.Clocks = append(b.doc.Clocks, Clock(employeeID, in, out))
	return b
}

// Build returns the document
func (b *DocumentBuilder) Build() *domain.Document {
	doc := b.doc
	return &doc
}

// SampleDocument covers a morning shift, an overnight shift and a record
// with a missing clock-out.
func SampleDocument() *domain.Document {
	return NewDocument().
		WithEmployee(1, "Ada", "Lovelace").
		WithEmployee(2, "Grace", "").
		WithClock(1, "2024-01-01 09:00:00", "2024-01-01 11:30:00").
		WithClock(2, "2024-01-01 22:00:00", "2024-01-02 02:00:00").
		WithClock(2, "2024-01-03 08:00:00", "").
		Build()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
