package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicReservationEvents carries the reservation lifecycle events.
const TopicReservationEvents = "reservation.events"

// Reservation event types.
const (
	ReservationBooked    = "reservation.booked"
	ReservationModified  = "reservation.modified"
	ReservationCancelled = "reservation.cancelled"
)

// Event is the envelope written to Kafka.
type Event struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEvent wraps data in an envelope with a fresh ID and timestamp.
func NewEvent(source, eventType string, data interface{}) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}, nil
}

// ParseEvent decodes an envelope from raw message bytes.
func ParseEvent(raw []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return Event{}, fmt.Errorf("failed to parse event: %w", err)
	}
	return evt, nil
}

// ParseData decodes the envelope payload into out.
func (e Event) ParseData(out interface{}) error {
	return json.Unmarshal(e.Data, out)
}

// ReservationEvent is the payload shared by all reservation event types.
type ReservationEvent struct {
	BookingIdentifier string    `json:"booking_identifier"`
	Email             string    `json:"email"`
	Dates             []string  `json:"dates"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// Publisher writes reservation events to Kafka.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewPublisher creates a Publisher for the reservation events topic.
func NewPublisher(brokers []string, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        TopicReservationEvents,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger}
}

// Publish writes one enveloped event keyed by the booking identifier.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	evt, err := NewEvent("service-campsite", eventType, data)
	if err != nil {
		return err
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", TopicReservationEvents),
		zap.String("event_type", eventType),
	)
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
