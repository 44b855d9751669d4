package ports

import (
	"context"
	"time"
)

// OrderChanged is the integration event published after a successful
// transit mutation so downstream consumers (notifications, analytics) can
// react without polling.
type OrderChanged struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"deliveryStatus"`
	CurrentHubID   *string   `json:"currentHubId,omitempty"`
	EventStatus    string    `json:"eventStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher pushes integration events to the message broker.
// Publishing is best-effort: commands commit first and must not fail the
// business operation when the broker is unavailable.
type EventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChanged) error
}
