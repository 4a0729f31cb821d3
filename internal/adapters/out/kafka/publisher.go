// Package kafka publishes order lifecycle events to downstream consumers
// (analytics, notification fan-out) over a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ErrBrokerAddressIsRequired is returned when the publisher is constructed
// without a broker address.
var ErrBrokerAddressIsRequired = errors.New("kafka broker address is required")

// ErrTopicIsRequired is returned when the publisher is constructed without a
// topic.
var ErrTopicIsRequired = errors.New("kafka topic is required")

// OrderEventPublisher writes order status-changed events to Kafka.
//
// Publishing happens strictly after the status transaction has committed and
// is best effort: callers log a failed publish and move on. Messages are
// keyed by order id so all events for one order land on the same partition
// in transition order.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher writing to the given broker and
// topic.
func NewOrderEventPublisher(brokerAddress, topic string) (*OrderEventPublisher, error) {
	if brokerAddress == "" {
		return nil, ErrBrokerAddressIsRequired
	}
	if topic == "" {
		return nil, ErrTopicIsRequired
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddress),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}

	return &OrderEventPublisher{writer: writer}, nil
}

type statusChangedMessage struct {
	OrderID    string    `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PublishStatusChanged writes a single status-changed event.
func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	payload, err := json.Marshal(statusChangedMessage{
		OrderID:    event.OrderID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		ActorID:    event.ActorID.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
	})
}

// Close releases the underlying Kafka writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
