package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
)

// CatalogProduct is the read-only projection of a catalog SKU or SPU used to
// pre-fill order items.
type CatalogProduct struct {
	ID          kernel.UUID
	ProductName string
	ProductCode string
	Unit        string
}

// CatalogLookup resolves catalog references on order items. Implementations
// live outside this core.
type CatalogLookup interface {
	// GetSKU retrieves a SKU projection by ID.
	GetSKU(ctx context.Context, id kernel.UUID) (CatalogProduct, error)

	// GetSPU retrieves a SPU projection by ID.
	GetSPU(ctx context.Context, id kernel.UUID) (CatalogProduct, error)
}

// Supplier is the read-only projection of a supplier reference. Every order
// requires one.
type Supplier struct {
	ID   kernel.UUID
	Name string
}

// SupplierLookup resolves supplier references. Implementations live outside
// this core.
type SupplierLookup interface {
	// GetSupplier retrieves a supplier projection by ID.
	GetSupplier(ctx context.Context, id kernel.UUID) (Supplier, error)

	// ListActive lists the suppliers currently available for new orders,
	// sorted by name.
	ListActive(ctx context.Context) ([]Supplier, error)
}

// OrderNumberGenerator assigns business-unique order numbers. The production
// implementation is time-seeded; tests inject a deterministic fake.
type OrderNumberGenerator interface {
	Next() string
}
