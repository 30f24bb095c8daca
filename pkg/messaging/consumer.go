package messaging

import (
	"context"
	"fmt"

	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MaxDeliveryAttempts is how often a failing message is retried before it
// is dead-lettered
const MaxDeliveryAttempts = 3

// deliveryCountHeader is set by quorum queues on every redelivery
const deliveryCountHeader = "x-delivery-count"

// MessageHandler is a function that handles a message
type MessageHandler func(ctx context.Context, event *Event) error

// Action is what happens to a delivery after it was handled
type Action int

const (
	Ack     Action = iota // done, remove from the queue
	Requeue               // failed, try again
	Reject                // failed for good, dead-letter
)

func (a Action) String() string {
	switch a {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "reject"
	}
}

// Consumer handles consuming events from RabbitMQ
type Consumer struct {
	rmq       *RabbitMQ
	queueName string
	handlers  map[string]MessageHandler
	logger    *logger.Logger
}

// NewConsumer creates a new consumer for the given queue. With a nil rmq
// nothing is declared and the consumer can only Dispatch.
func NewConsumer(rmq *RabbitMQ, queueName string, log *logger.Logger) (*Consumer, error) {
	if rmq != nil {
		if _, err := rmq.DeclareQueue(queueName); err != nil {
			return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
	}

	return &Consumer{
		rmq:       rmq,
		queueName: queueName,
		handlers:  make(map[string]MessageHandler),
		logger:    log,
	}, nil
}

// Subscribe subscribes to an exchange with a routing key pattern
func (c *Consumer) Subscribe(exchange, routingKeyPattern string) error {
	if err := c.rmq.DeclareExchange(exchange); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := c.rmq.BindQueue(c.queueName, exchange, routingKeyPattern); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	c.logger.Info().
		Str("queue", c.queueName).
		Str("exchange", exchange).
		Str("routing_key", routingKeyPattern).
		Msg("subscribed to exchange")

	return nil
}

// RegisterHandler registers a handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler MessageHandler) {
	c.handlers[eventType] = handler
}

// Start starts consuming messages from the queue
func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.rmq.Channel().Consume(
		c.queueName, // queue
		"",          // consumer tag (auto-generated)
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info().Str("queue", c.queueName).Msg("consumer started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.Info().Str("queue", c.queueName).Msg("consumer stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn().Msg("message channel closed")
					return
				}
				c.settle(msg, c.HandleDelivery(ctx, msg))
			}
		}
	}()

	return nil
}

// HandleDelivery dispatches a delivery with the number of times the broker
// already redelivered it
func (c *Consumer) HandleDelivery(ctx context.Context, msg amqp.Delivery) Action {
	return c.Dispatch(ctx, msg.Body, retryCount(msg.Headers))
}

// Dispatch decodes a message body, runs the handler registered for its
// event type and decides how the delivery should be settled
func (c *Consumer) Dispatch(ctx context.Context, body []byte, retries int) Action {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Error().Err(err).Msg("failed to unmarshal event")
		return Reject
	}

	ctx = WithCorrelationID(ctx, event.CorrelationID)

	handler, ok := c.handlers[event.Type]
	if !ok {
		c.logger.Debug().
			Str("event_type", event.Type).
			Msg("no handler registered for event type")
		return Ack
	}

	c.logger.Debug().
		Str("event_type", event.Type).
		Str("event_id", event.ID).
		Str("correlation_id", event.CorrelationID).
		Msg("processing event")

	if err := handler(ctx, &event); err != nil {
		c.logger.Error().
			Err(err).
			Str("event_type", event.Type).
			Str("event_id", event.ID).
			Msg("failed to process event")

		if retries >= MaxDeliveryAttempts {
			c.logger.Warn().
				Str("event_id", event.ID).
				Int("retry_count", retries).
				Msg("max retries exceeded, sending to DLQ")
			return Reject
		}
		return Requeue
	}

	return Ack
}

func (c *Consumer) settle(msg amqp.Delivery, action Action) {
	var err error
	switch action {
	case Ack:
		err = msg.Ack(false)
	case Requeue:
		err = msg.Nack(false, true)
	default:
		err = msg.Reject(false)
	}

	if err != nil {
		c.logger.Error().Err(err).Str("action", action.String()).Msg("failed to settle delivery")
	}
}

func retryCount(headers amqp.Table) int {
	switch count := headers[deliveryCountHeader].(type) {
	case int64:
		return int(count)
	case int32:
		return int(count)
	case int:
		return count
	default:
		return 0
	}
}
