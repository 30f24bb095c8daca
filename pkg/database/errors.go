package database

import (
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/lib/pq"
)

// MapPQError converts a PostgreSQL error to an AppError.
// Returns nil if the error is not a pq.Error or has no mapping.
func MapPQError(err error) *errors.AppError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	// Unique constraint violation
	case "23505":
		if pqErr.Constraint != "" {
			return errors.Conflict("a record violating " + pqErr.Constraint + " already exists")
		}
		return errors.Conflict("a record with these values already exists")

	// Foreign key violation
	case "23503":
		return errors.BadRequest("referenced record does not exist")

	// Not null violation
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	// Numeric value out of range
	case "22003":
		return errors.BadRequest("numeric value out of range")

	default:
		return nil
	}
}
