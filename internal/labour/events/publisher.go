package events

import (
	"context"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/aperture/labour-hours/pkg/messaging"
)

// ServiceName is the event source of everything published here
const ServiceName = "labour-service"

// EventPublisher publishes an event payload under a type
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// LabourEventPublisher publishes labour-related events
type LabourEventPublisher struct {
	publisher EventPublisher
	logger    *logger.Logger
}

// NewLabourEventPublisher creates a publisher on the labour exchange
func NewLabourEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*LabourEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeLabourEvents, ServiceName, log)
	if err != nil {
		return nil, err
	}

	return NewLabourEventPublisherWith(publisher, log), nil
}

// NewLabourEventPublisherWith wraps an existing publisher
func NewLabourEventPublisherWith(publisher EventPublisher, log *logger.Logger) *LabourEventPublisher {
	return &LabourEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

// PublishRunCompleted publishes a run completed event. Failures are logged.
func (p *LabourEventPublisher) PublishRunCompleted(ctx context.Context, run *domain.Run) {
	data := RunCompletedData(run)

	if err := p.publisher.Publish(ctx, messaging.EventLabourRunCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to publish labour run completed event")
	}
}

// RunCompletedData summarizes a run for the completed event
func RunCompletedData(run *domain.Run) messaging.LabourRunCompletedEvent {
	var total domain.Hours
	for _, employee := range run.Employees {
		for _, entry := range employee.Labour {
			total = total.Add(entry.Total)
		}
	}

	return messaging.LabourRunCompletedEvent{
		RunID:       run.ID,
		ProcessedAt: run.ProcessedAt,
		Employees:   len(run.Employees),
		Entries:     run.Stats.Entries,
		Clocks:      run.Stats.Clocks,
		Processed:   run.Stats.Processed,
		Skipped:     run.Stats.Skipped(),
		TotalHours:  total.String(),
	}
}
