package ports

import (
	"context"

	"procurement/internal/core/domain/model/order"
)

// EventPublisher receives order lifecycle notifications. Publishing is
// fire-and-forget: no return value is consumed and a failing subscriber
// never fails the emitting operation.
type EventPublisher interface {
	// PublishOrderCreated announces a newly created order.
	PublishOrderCreated(ctx context.Context, o *order.PurchaseOrder)

	// PublishOrderStatusChanged announces a completed status transition
	// with the statuses before and after.
	PublishOrderStatusChanged(ctx context.Context, o *order.PurchaseOrder, oldStatus, newStatus order.Status)
}
