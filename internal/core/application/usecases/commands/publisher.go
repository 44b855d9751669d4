package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/order"
	"transit/internal/core/ports"
)

// OrderChangedPublisher is the narrow slice of ports.EventPublisher the
// command handlers need.
type OrderChangedPublisher interface {
	PublishOrderChanged(ctx context.Context, event ports.OrderChanged) error
}

// publishOrderChanged pushes the order's latest state to the broker after
// a successful commit. Best-effort: a broker failure never fails the
// already committed business operation, so the error is dropped.
func publishOrderChanged(ctx context.Context, publisher OrderChangedPublisher, aggregate *order.Order) {
	if publisher == nil {
		return
	}

	event := ports.OrderChanged{
		OrderID:        aggregate.ID().String(),
		Status:         aggregate.Status().String(),
		DeliveryStatus: aggregate.DeliveryStatus().String(),
		OccurredAt:     time.Now().UTC(),
	}
	if current := aggregate.CurrentHub(); current != nil {
		id := current.String()
		event.CurrentHubID = &id
	}
	if timeline := aggregate.Timeline(); len(timeline) > 0 {
		event.EventStatus = timeline[len(timeline)-1].Status.String()
	}

	_ = publisher.PublishOrderChanged(ctx, event)
}
