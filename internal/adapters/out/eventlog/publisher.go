// Package eventlog publishes order lifecycle events to the structured log.
// It is the default EventPublisher wiring; deployments that feed a broker
// replace it at composition time.
package eventlog

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
)

// SlogEventPublisher writes order lifecycle events as structured log records.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher writing through the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{logger: logger}
}

// PublishOrderCreated logs a newly created purchase order.
func (p *SlogEventPublisher) PublishOrderCreated(ctx context.Context, o *order.PurchaseOrder) {
	p.logger.InfoContext(ctx, "order created",
		"order_id", o.ID().String(),
		"order_number", o.OrderNumber(),
		"supplier_id", o.SupplierID().String(),
		"payable_amount", o.PayableAmount(),
	)
}

// PublishOrderStatusChanged logs a completed order status transition.
func (p *SlogEventPublisher) PublishOrderStatusChanged(
	ctx context.Context,
	o *order.PurchaseOrder,
	oldStatus, newStatus order.Status,
) {
	p.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(),
		"order_number", o.OrderNumber(),
		"old_status", oldStatus.String(),
		"new_status", newStatus.String(),
	)
}
