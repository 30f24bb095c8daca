package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/pkg/database"
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/jmoiron/sqlx"
)

// RunRecord is a stored labour run
type RunRecord struct {
	ID                     string    `db:"id" json:"id"`
	ProcessedAt            time.Time `db:"processed_at" json:"processed_at"`
	Clocks                 int       `db:"clocks" json:"clocks"`
	Processed              int       `db:"processed" json:"processed"`
	SkippedMissingData     int       `db:"skipped_missing_data" json:"skipped_missing_data"`
	SkippedInverted        int       `db:"skipped_inverted" json:"skipped_inverted"`
	SkippedUnknownEmployee int       `db:"skipped_unknown_employee" json:"skipped_unknown_employee"`
	Entries                int       `db:"entries" json:"entries"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// EntryRecord is one stored labour entry. Position is the employee's place
// in the batch output and Seq orders entries within an employee the way
// they were produced.
type EntryRecord struct {
	RunID      string            `db:"run_id" json:"run_id"`
	Position   int               `db:"employee_pos" json:"employee_pos"`
	EmployeeID domain.EmployeeID `db:"employee_id" json:"employee_id"`
	FirstName  *string           `db:"first_name" json:"first_name"`
	LastName   *string           `db:"last_name" json:"last_name"`
	Seq        int               `db:"seq" json:"seq"`
	LabourDate string            `db:"labour_date" json:"labour_date"`
	Total      domain.Hours      `db:"total_hours" json:"total_hours"`
	Period1    domain.Hours      `db:"period1" json:"period1"`
	Period2    domain.Hours      `db:"period2" json:"period2"`
	Period3    domain.Hours      `db:"period3" json:"period3"`
	Period4    domain.Hours      `db:"period4" json:"period4"`
}

// Entry converts the record back to a labour entry
func (e *EntryRecord) Entry() domain.LabourEntry {
	return domain.LabourEntry{
		Date:  e.LabourDate,
		Total: e.Total,
		Periods: domain.PeriodBreakdown{
			Period1: e.Period1,
			Period2: e.Period2,
			Period3: e.Period3,
			Period4: e.Period4,
		},
	}
}

// Schema creates the labour tables
const Schema = `
CREATE TABLE IF NOT EXISTS labour_runs (
	id                       UUID PRIMARY KEY,
	processed_at             TIMESTAMPTZ NOT NULL,
	clocks                   INTEGER NOT NULL,
	processed                INTEGER NOT NULL,
	skipped_missing_data     INTEGER NOT NULL,
	skipped_inverted         INTEGER NOT NULL,
	skipped_unknown_employee INTEGER NOT NULL,
	entries                  INTEGER NOT NULL,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS labour_entries (
	run_id       UUID NOT NULL REFERENCES labour_runs(id) ON DELETE CASCADE,
	employee_pos INTEGER NOT NULL,
	employee_id  TEXT NOT NULL,
	first_name   TEXT,
	last_name    TEXT,
	seq          INTEGER NOT NULL,
	labour_date  DATE NOT NULL,
	total_hours  NUMERIC(6,1) NOT NULL,
	period1      NUMERIC(6,1) NOT NULL,
	period2      NUMERIC(6,1) NOT NULL,
	period3      NUMERIC(6,1) NOT NULL,
	period4      NUMERIC(6,1) NOT NULL,
	PRIMARY KEY (run_id, employee_pos, seq)
);

CREATE INDEX IF NOT EXISTS idx_labour_entries_employee_date ON labour_entries (employee_id, labour_date);
`

const insertRunQuery = `
	INSERT INTO labour_runs (
		id, processed_at, clocks, processed,
		skipped_missing_data, skipped_inverted, skipped_unknown_employee, entries
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const insertEntryQuery = `
	INSERT INTO labour_entries (
		run_id, employee_pos, employee_id, first_name, last_name, seq, labour_date,
		total_hours, period1, period2, period3, period4
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// LabourRepository stores labour runs in Postgres
type LabourRepository struct {
	db *database.DB
}

// NewLabourRepository creates a new labour repository
func NewLabourRepository(db *database.DB) *LabourRepository {
	return &LabourRepository{db: db}
}

// EnsureSchema creates the tables if they do not exist
func (r *LabourRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create labour schema: %w", err)
	}
	return nil
}

// SaveRun stores a run and all of its entries in one transaction
func (r *LabourRepository) SaveRun(ctx context.Context, run *domain.Run) error {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertRunQuery,
			run.ID, run.ProcessedAt, run.Stats.Clocks, run.Stats.Processed,
			run.Stats.SkippedMissingData, run.Stats.SkippedInverted, run.Stats.SkippedUnknownEmployee, run.Stats.Entries,
		); err != nil {
			return err
		}

		for pos, employee := range run.Employees {
			for seq, entry := range employee.Labour {
				if _, err := tx.ExecContext(ctx, insertEntryQuery,
					run.ID, pos, employee.EmployeeID, employee.FirstName, employee.LastName, seq, entry.Date,
					entry.Total, entry.Periods.Period1, entry.Periods.Period2, entry.Periods.Period3, entry.Periods.Period4,
				); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}

// GetRun gets a run by ID
func (r *LabourRepository) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	var run RunRecord

	query := `
		SELECT id, processed_at, clocks, processed,
		       skipped_missing_data, skipped_inverted, skipped_unknown_employee, entries, created_at
		FROM labour_runs
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &run, query, id)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("labour_run")
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// ListEntries lists the entries of a run in batch output order
func (r *LabourRepository) ListEntries(ctx context.Context, runID string) ([]*EntryRecord, error) {
	var entries []*EntryRecord

	query := `
		SELECT run_id, employee_pos, employee_id, first_name, last_name, seq, labour_date::text AS labour_date,
		       total_hours, period1, period2, period3, period4
		FROM labour_entries
		WHERE run_id = $1
		ORDER BY employee_pos, seq
	`
	if err := r.db.SelectContext(ctx, &entries, query, runID); err != nil {
		return nil, err
	}

	return entries, nil
}
