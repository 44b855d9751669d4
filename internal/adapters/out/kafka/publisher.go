// Package kafka publishes order change notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"transit/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var ErrHostIsRequired = errors.New("host is required")
var ErrTopicIsRequired = errors.New("topic is required")

// OrderChangedPublisher writes order change events to Kafka.
// Messages are keyed by order ID so all events of one order land on the
// same partition and keep their order.
type OrderChangedPublisher struct {
	writer *kafka.Writer
}

// NewOrderChangedPublisher creates a publisher for the given broker and topic.
func NewOrderChangedPublisher(host string, topic string) (*OrderChangedPublisher, error) {
	if host == "" {
		return nil, ErrHostIsRequired
	}
	if topic == "" {
		return nil, ErrTopicIsRequired
	}

	return &OrderChangedPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(host),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}, nil
}

// PublishOrderChanged sends one order change event.
func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish order changed event: %w", err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
