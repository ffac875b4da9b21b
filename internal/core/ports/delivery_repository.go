package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
)

// DeliveryStatistics aggregates delivery batch counts over a period.
type DeliveryStatistics struct {
	TotalCount    int64
	CountByStatus map[delivery.Status]int64
}

// DeliveryRepository defines the persistence contract for delivery batches.
type DeliveryRepository interface {
	// Add persists a new delivery batch.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery batch.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery batch by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// FindByOrder retrieves all of an order's batches, ordered by creation
	// time ascending.
	FindByOrder(ctx context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error)

	// FindInTransit retrieves all batches currently with the carrier.
	FindInTransit(ctx context.Context) ([]*delivery.Delivery, error)

	// FindPendingInspection retrieves all received-but-uninspected batches.
	FindPendingInspection(ctx context.Context) ([]*delivery.Delivery, error)

	// FindPendingWarehousing retrieves all inspected-but-unstored batches.
	FindPendingWarehousing(ctx context.Context) ([]*delivery.Delivery, error)

	// Statistics aggregates batch counts for deliveries created in the
	// given period. Nil bounds leave the period open on that side.
	Statistics(ctx context.Context, startDate, endDate *time.Time) (DeliveryStatistics, error)
}
