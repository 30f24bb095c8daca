package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/internal/labour/repository"
	"github.com/aperture/labour-hours/pkg/database"
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/aperture/labour-hours/pkg/testutil"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertRun = `
	INSERT INTO labour_runs (
		id, processed_at, clocks, processed,
		skipped_missing_data, skipped_inverted, skipped_unknown_employee, entries
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const insertEntry = `
	INSERT INTO labour_entries (
		run_id, employee_pos, employee_id, first_name, last_name, seq, labour_date,
		total_hours, period1, period2, period3, period4
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

const runID = "0b7c8f3e-4a51-4d55-9f0e-6a1f1c2d3e4f"

func newRepo(t *testing.T) (*repository.LabourRepository, *testutil.MockDB) {
	t.Helper()
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })
	return repository.NewLabourRepository(database.Wrap(mockDB.DB, nil)), mockDB
}

func sampleRun() *domain.Run {
	return &domain.Run{
		ID:          runID,
		ProcessedAt: time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC),
		Stats:       domain.RunStats{Clocks: 3, Processed: 2, SkippedMissingData: 1, Entries: 3},
		Employees: []domain.EmployeeSummary{
			{
				EmployeeID: domain.NumericID(1),
				FirstName:  testutil.PtrString("Ada"),
				Labour: []domain.LabourEntry{
					{
						Date:    "2024-01-01",
						Total:   domain.MustHours("2.5"),
						Periods: domain.PeriodBreakdown{Period1: domain.MustHours("2.5")},
					},
					{
						Date:    "2024-01-02",
						Total:   domain.MustHours("1"),
						Periods: domain.PeriodBreakdown{Period4: domain.MustHours("1")},
					},
				},
			},
			{
				EmployeeID: domain.StringID("e-2"),
				Labour: []domain.LabourEntry{
					{
						Date:    "2024-01-02",
						Total:   domain.MustHours("0.5"),
						Periods: domain.PeriodBreakdown{Period2: domain.MustHours("0.5")},
					},
				},
			},
			{EmployeeID: domain.NumericID(3), Labour: []domain.LabourEntry{}},
		},
	}
}

func TestLabourRepository_SaveRun(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec(insertRun).
		WithArgs(runID, testutil.AnyTime{}, 3, 2, 1, 0, 0, 3).
		WillReturnResult(testutil.Result(0, 1))
	mockDB.ExpectExec(insertEntry).
		WithArgs(runID, 0, "1", "Ada", nil, 0, "2024-01-01", "2.5", "2.5", "0.0", "0.0", "0.0").
		WillReturnResult(testutil.Result(0, 1))
	mockDB.ExpectExec(insertEntry).
		WithArgs(runID, 0, "1", "Ada", nil, 1, "2024-01-02", "1.0", "0.0", "0.0", "0.0", "1.0").
		WillReturnResult(testutil.Result(0, 1))
	mockDB.ExpectExec(insertEntry).
		WithArgs(runID, 1, `"e-2"`, nil, nil, 0, "2024-01-02", "0.5", "0.0", "0.5", "0.0", "0.0").
		WillReturnResult(testutil.Result(0, 1))
	mockDB.ExpectCommit()

	require.NoError(t, repo.SaveRun(context.Background(), sampleRun()))
	mockDB.ExpectationsWereMet(t)
}

func TestLabourRepository_SaveRun_DuplicateRun(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec(insertRun).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "labour_runs_pkey"})
	mockDB.ExpectRollback()

	err := repo.SaveRun(context.Background(), sampleRun())

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
	mockDB.ExpectationsWereMet(t)
}

func TestLabourRepository_SaveRun_EntryFailureRollsBack(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec(insertRun).WillReturnResult(testutil.Result(0, 1))
	mockDB.ExpectExec(insertEntry).WillReturnError(context.DeadlineExceeded)
	mockDB.ExpectRollback()

	err := repo.SaveRun(context.Background(), sampleRun())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	mockDB.ExpectationsWereMet(t)
}

func TestLabourRepository_EnsureSchema(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.ExpectExec(repository.Schema).WillReturnResult(testutil.Result(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	mockDB.ExpectationsWereMet(t)
}

func TestLabourRepository_GetRun(t *testing.T) {
	repo, mockDB := newRepo(t)
	processedAt := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

	mockDB.Mock.ExpectQuery("FROM labour_runs").
		WithArgs(runID).
		WillReturnRows(testutil.MockRows(
			"id", "processed_at", "clocks", "processed",
			"skipped_missing_data", "skipped_inverted", "skipped_unknown_employee", "entries", "created_at",
		).AddRow(runID, processedAt, 3, 2, 1, 0, 0, 2, processedAt))

	run, err := repo.GetRun(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, 2, run.Entries)
	assert.Equal(t, 1, run.SkippedMissingData)
	mockDB.ExpectationsWereMet(t)
}

func TestLabourRepository_GetRun_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.Mock.ExpectQuery("FROM labour_runs").
		WithArgs("missing").
		WillReturnRows(testutil.MockRows("id"))

	_, err := repo.GetRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLabourRepository_ListEntries(t *testing.T) {
	repo, mockDB := newRepo(t)

	mockDB.Mock.ExpectQuery("FROM labour_entries").
		WithArgs(runID).
		WillReturnRows(testutil.MockRows(
			"run_id", "employee_pos", "employee_id", "first_name", "last_name", "seq", "labour_date",
			"total_hours", "period1", "period2", "period3", "period4",
		).
			AddRow(runID, 0, `"x"`, "Ada", nil, 0, "2024-01-01", "2.5", "2.5", "0.0", "0.0", "0.0").
			AddRow(runID, 1, "1", nil, nil, 0, "2024-01-02", []byte("1.0"), "0.0", "0.0", "0.0", "1.0"))

	entries, err := repo.ListEntries(context.Background(), runID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.StringID("x"), entries[0].EmployeeID)
	assert.Equal(t, 0, entries[0].Position)
	require.NotNil(t, entries[0].FirstName)
	assert.Nil(t, entries[0].LastName)
	assert.Equal(t, "2.5", entries[0].Entry().Total.String())

	assert.Equal(t, domain.NumericID(1), entries[1].EmployeeID)
	assert.Equal(t, 1, entries[1].Position)
	entry := entries[1].Entry()
	assert.Equal(t, "2024-01-02", entry.Date)
	assert.Equal(t, "1.0", entry.Periods.Period4.String())
	mockDB.ExpectationsWereMet(t)
}
