package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderStatusChangedEvent is emitted after a status transition has committed.
type OrderStatusChangedEvent struct {
	OrderID    kernel.UUID
	From       order.Status
	To         order.Status
	ActorID    kernel.UUID
	OccurredAt time.Time
}

// OrderEventPublisher publishes order lifecycle events to downstream
// consumers. Publishing is best effort and happens after commit; a failed
// publish is logged, never surfaced to the caller.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
