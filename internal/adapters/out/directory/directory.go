// Package directory provides in-memory catalog and supplier lookups.
// Deployments with a master-data service swap these for remote clients at
// composition time; the in-memory form also backs local development.
package directory

import (
	"context"
	"sort"
	"sync"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// StaticCatalog resolves SKU and SPU references from registered projections.
type StaticCatalog struct {
	mu   sync.RWMutex
	skus map[kernel.UUID]ports.CatalogProduct
	spus map[kernel.UUID]ports.CatalogProduct
}

// NewStaticCatalog creates an empty catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		skus: make(map[kernel.UUID]ports.CatalogProduct),
		spus: make(map[kernel.UUID]ports.CatalogProduct),
	}
}

// RegisterSKU adds or replaces a SKU projection.
func (c *StaticCatalog) RegisterSKU(product ports.CatalogProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skus[product.ID] = product
}

// RegisterSPU adds or replaces a SPU projection.
func (c *StaticCatalog) RegisterSPU(product ports.CatalogProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spus[product.ID] = product
}

// GetSKU retrieves a SKU projection by ID.
func (c *StaticCatalog) GetSKU(_ context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.skus[id]
	if !ok {
		return ports.CatalogProduct{}, errs.NewObjectNotFoundError("skuID", id)
	}
	return product, nil
}

// GetSPU retrieves a SPU projection by ID.
func (c *StaticCatalog) GetSPU(_ context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.spus[id]
	if !ok {
		return ports.CatalogProduct{}, errs.NewObjectNotFoundError("spuID", id)
	}
	return product, nil
}

// StaticSuppliers resolves supplier references from registered projections.
type StaticSuppliers struct {
	mu        sync.RWMutex
	suppliers map[kernel.UUID]ports.Supplier
}

// NewStaticSuppliers creates an empty supplier directory.
func NewStaticSuppliers() *StaticSuppliers {
	return &StaticSuppliers{suppliers: make(map[kernel.UUID]ports.Supplier)}
}

// Register adds or replaces a supplier projection.
func (s *StaticSuppliers) Register(supplier ports.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[supplier.ID] = supplier
}

// GetSupplier retrieves a supplier projection by ID.
func (s *StaticSuppliers) GetSupplier(_ context.Context, id kernel.UUID) (ports.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	supplier, ok := s.suppliers[id]
	if !ok {
		return ports.Supplier{}, errs.NewObjectNotFoundError("supplierID", id)
	}
	return supplier, nil
}

// ListActive lists the registered suppliers sorted by name. The static
// roster only carries suppliers open for ordering; deregistration removes
// them.
func (s *StaticSuppliers) ListActive(_ context.Context) ([]ports.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Supplier, 0, len(s.suppliers))
	for _, supplier := range s.suppliers {
		out = append(out, supplier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Deregister removes a supplier from the active roster. Existing orders keep
// their supplier reference; only new order entry is affected.
func (s *StaticSuppliers) Deregister(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suppliers, id)
}
