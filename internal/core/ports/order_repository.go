package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderSearchCriteria narrows an order search. Zero-valued fields are not
// applied.
type OrderSearchCriteria struct {
	OrderNumber string
	Title       string
	SupplierID  *kernel.UUID
	Statuses    []order.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderStatistics aggregates order counts and amounts over a period.
type OrderStatistics struct {
	TotalCount    int64
	TotalPayable  string
	CountByStatus map[order.Status]int64
}

// OrderRepository defines the persistence contract for purchase order
// aggregates, including their line items.
type OrderRepository interface {
	// Add persists a new order aggregate and its items.
	Add(ctx context.Context, aggregate *order.PurchaseOrder) error

	// Update persists changes to an existing order aggregate and its items.
	Update(ctx context.Context, aggregate *order.PurchaseOrder) error

	// Get retrieves an order with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.PurchaseOrder, error)

	// FindPendingApproval retrieves all orders awaiting approval,
	// ordered by creation time ascending.
	FindPendingApproval(ctx context.Context) ([]*order.PurchaseOrder, error)

	// FindBySupplier retrieves a supplier's orders, optionally filtered to
	// the given statuses, ordered by creation time ascending.
	FindBySupplier(ctx context.Context, supplierID kernel.UUID, statuses ...order.Status) ([]*order.PurchaseOrder, error)

	// Search retrieves orders matching the criteria, ordered by creation
	// time descending.
	Search(ctx context.Context, criteria OrderSearchCriteria) ([]*order.PurchaseOrder, error)

	// Statistics aggregates counts and payable totals for orders created in
	// the given period. Nil bounds leave the period open on that side.
	Statistics(ctx context.Context, startDate, endDate *time.Time) (OrderStatistics, error)
}
