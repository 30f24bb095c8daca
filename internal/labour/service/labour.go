package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aperture/labour-hours/internal/labour/calc"
	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/aperture/labour-hours/pkg/validation"
	"github.com/google/uuid"
)

// RunStore persists completed runs
type RunStore interface {
	SaveRun(ctx context.Context, run *domain.Run) error
}

// RunPublisher announces completed runs
type RunPublisher interface {
	PublishRunCompleted(ctx context.Context, run *domain.Run)
}

// Options tune how a batch is processed
type Options struct {
	// SkipUnknownEmployees turns a clock record for an unlisted employee
	// into a counted skip instead of aborting the batch
	SkipUnknownEmployees bool
	// EmitEmptySegments keeps zero-length day segments as all-zero entries
	EmitEmptySegments bool
}

// LabourService turns batch documents into labour summaries
type LabourService struct {
	opts      Options
	store     RunStore
	publisher RunPublisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewLabourService creates a new labour service. store and publisher may
// be nil.
func NewLabourService(opts Options, store RunStore, publisher RunPublisher, log *logger.Logger) *LabourService {
	if log == nil {
		log = logger.Nop()
	}
	return &LabourService{
		opts:      opts,
		store:     store,
		publisher: publisher,
		logger:    log.WithComponent("labour"),
		now:       time.Now,
	}
}

// Process summarizes a document and commits the run. A fatal record aborts
// the whole batch and nothing is stored or published.
func (s *LabourService) Process(ctx context.Context, doc *domain.Document) (*domain.Run, error) {
	run, err := s.Summarize(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := s.Commit(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// Summarize computes the labour run of a document without touching the
// store or the publisher
func (s *LabourService) Summarize(ctx context.Context, doc *domain.Document) (*domain.Run, error) {
	if err := validation.Validate(doc); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:          uuid.New().String(),
		ProcessedAt: s.now().UTC(),
	}
	log := s.logger.WithRunID(run.ID)

	log.Info().
		Int("employees", len(doc.Employees)).
		Int("clocks", len(doc.Clocks)).
		Msg("processing labour batch")

	roster := NewRoster(doc.Employees)
	for _, id := range roster.Duplicates() {
		log.Warn().Str("employee_id", id.String()).Msg("duplicate employee id, last entry wins")
	}

	for i, clock := range doc.Clocks {
		run.Stats.Clocks++

		c := ClassifyClock(i, clock, roster)
		switch c.Disposition {
		case Process:
			entries := calc.BuildEntries(c.ClockIn, c.ClockOut, s.opts.EmitEmptySegments)
			roster.Append(clock.EmployeeID, entries...)
			run.Stats.Processed++
			run.Stats.Entries += len(entries)

		case SkipMissingData:
			run.Stats.SkippedMissingData++
			log.Debug().Int("clock_index", i).Msg("skipping clock record with missing datetime")

		case SkipInvertedInterval:
			run.Stats.SkippedInverted++
			log.Debug().
				Int("clock_index", i).
				Time("clock_in", c.ClockIn).
				Time("clock_out", c.ClockOut).
				Msg("skipping clock record that does not end after it starts")

		case FatalUnknownEmployee:
			if s.opts.SkipUnknownEmployees {
				run.Stats.SkippedUnknownEmployee++
				log.Warn().
					Int("clock_index", i).
					Str("employee_id", clock.EmployeeID.String()).
					Msg("skipping clock record for unknown employee")
				continue
			}
			log.Error().Err(c.Err).Msg("labour batch aborted")
			return nil, c.Err

		case FatalMalformedTimestamp:
			log.Error().Err(c.Err).Msg("labour batch aborted")
			return nil, c.Err
		}
	}

	run.Employees = roster.Summaries()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().
		Int("processed", run.Stats.Processed).
		Int("skipped", run.Stats.Skipped()).
		Int("entries", run.Stats.Entries).
		Msg("labour batch processed")

	return run, nil
}

// Commit stores a summarized run and announces it. A store failure is
// returned before anything is published.
func (s *LabourService) Commit(ctx context.Context, run *domain.Run) error {
	if s.store != nil {
		if err := s.store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save labour run: %w", err)
		}
	}

	if s.publisher != nil {
		s.publisher.PublishRunCompleted(ctx, run)
	}

	return nil
}
