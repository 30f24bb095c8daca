package consumers

import (
	"context"
	"net/http"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/aperture/labour-hours/pkg/messaging"
)

// BatchProcessor summarizes a batch document
type BatchProcessor interface {
	Process(ctx context.Context, doc *domain.Document) (*domain.Run, error)
}

// BatchEventHandler handles batch requests (testable without RabbitMQ)
type BatchEventHandler struct {
	processor BatchProcessor
	logger    *logger.Logger
}

// NewBatchEventHandler creates a new batch request handler
func NewBatchEventHandler(processor BatchProcessor, log *logger.Logger) *BatchEventHandler {
	return &BatchEventHandler{
		processor: processor,
		logger:    log,
	}
}

// HandleBatchRequested processes the document carried by the event.
// Requests that can never succeed, such as an undecodable document or a
// batch aborted by its own data, are logged and dropped. Anything else is
// returned so the delivery is retried.
func (h *BatchEventHandler) HandleBatchRequested(ctx context.Context, event *messaging.Event) error {
	log := h.logger.WithCorrelationID(event.CorrelationID)

	var doc domain.Document
	if err := event.UnmarshalData(&doc); err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("failed to unmarshal batch document")
		return nil
	}

	run, err := h.processor.Process(ctx, &doc)
	if err != nil {
		if isPermanent(err) {
			log.Error().Err(err).Str("event_id", event.ID).Msg("labour batch rejected")
			return nil
		}
		return err
	}

	log.Info().
		Str("event_id", event.ID).
		Str("run_id", run.ID).
		Int("entries", run.Stats.Entries).
		Msg("labour batch request processed")

	return nil
}

func isPermanent(err error) bool {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.StatusCode >= http.StatusBadRequest && appErr.StatusCode < http.StatusInternalServerError
}

// BatchEventConsumer consumes labour batch requests
type BatchEventConsumer struct {
	consumer *messaging.Consumer
	handler  *BatchEventHandler
	logger   *logger.Logger
}

// NewBatchEventConsumer declares the queue, binds it to batch requests and
// registers the handler
func NewBatchEventConsumer(rmq *messaging.RabbitMQ, queue string, processor BatchProcessor, log *logger.Logger) (*BatchEventConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, queue, log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeLabourEvents, messaging.EventLabourBatchRequested); err != nil {
		return nil, err
	}

	handler := NewBatchEventHandler(processor, log)
	consumer.RegisterHandler(messaging.EventLabourBatchRequested, handler.HandleBatchRequested)

	return &BatchEventConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   log,
	}, nil
}

// Start starts consuming messages
func (c *BatchEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}
