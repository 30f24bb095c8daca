package service

import (
	"github.com/aperture/labour-hours/internal/labour/domain"
)

// Roster owns the per-employee output of a run, in input order
type Roster struct {
	order      []domain.EmployeeID
	byID       map[domain.EmployeeID]*domain.EmployeeSummary
	duplicates []domain.EmployeeID
}

// NewRoster builds an empty summary for every employee. When an id occurs
// more than once the last occurrence provides the names and the employee
// keeps the position of its first occurrence.
func NewRoster(employees []domain.Employee) *Roster {
	r := &Roster{
		order: make([]domain.EmployeeID, 0, len(employees)),
		byID:  make(map[domain.EmployeeID]*domain.EmployeeSummary, len(employees)),
	}

	for _, e := range employees {
		if existing, ok := r.byID[e.ID]; ok {
			existing.FirstName = normalizeName(e.FirstName)
			existing.LastName = normalizeName(e.LastName)
			r.duplicates = append(r.duplicates, e.ID)
			continue
		}

		r.order = append(r.order, e.ID)
		r.byID[e.ID] = &domain.EmployeeSummary{
			EmployeeID: e.ID,
			FirstName:  normalizeName(e.FirstName),
			LastName:   normalizeName(e.LastName),
			Labour:     []domain.LabourEntry{},
		}
	}

	return r
}

// Has reports whether the employee is on the roster
func (r *Roster) Has(id domain.EmployeeID) bool {
	_, ok := r.byID[id]
	return ok
}

// Append adds entries to an employee's labour list
func (r *Roster) Append(id domain.EmployeeID, entries ...domain.LabourEntry) {
	if summary, ok := r.byID[id]; ok {
		summary.Labour = append(summary.Labour, entries...)
	}
}

// Duplicates returns the ids that were listed more than once
func (r *Roster) Duplicates() []domain.EmployeeID {
	return r.duplicates
}

// Summaries returns the employee summaries in input order
func (r *Roster) Summaries() []domain.EmployeeSummary {
	out := make([]domain.EmployeeSummary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// An empty name is reported as null
func normalizeName(name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	v := *name
	return &v
}
