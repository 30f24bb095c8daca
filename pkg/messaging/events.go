package messaging

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Event types
const (
	EventLabourBatchRequested = "labour.batch.requested"
	EventLabourRunCompleted   = "labour.run.completed"
)

// Exchange names
const (
	ExchangeLabourEvents = "labour.events"
	ExchangeDeadLetter   = "dlx.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Labour Events

// The data of labour.batch.requested is a batch document with employees
// and clocks, the same shape the file and HTTP inputs use.

// LabourRunCompletedEvent is published after a batch has been summarized
type LabourRunCompletedEvent struct {
	RunID       string    `json:"run_id"`
	ProcessedAt time.Time `json:"processed_at"`
	Employees   int       `json:"employees"`
	Entries     int       `json:"entries"`
	Clocks      int       `json:"clocks"`
	Processed   int       `json:"processed"`
	Skipped     int       `json:"skipped"`
	TotalHours  string    `json:"total_hours"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
