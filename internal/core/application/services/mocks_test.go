package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// memStore is the shared backing state of the in-memory unit of work used
// across the service tests. The approval status map tracks the last
// committed status per record so the pending-only write guard can be
// simulated faithfully.
type memStore struct {
	orders         map[string]*order.PurchaseOrder
	approvals      map[string]*approval.Approval
	approvalStatus map[string]approval.Status
	deliveries     []*delivery.Delivery
}

func newMemStore() *memStore {
	return &memStore{
		orders:         make(map[string]*order.PurchaseOrder),
		approvals:      make(map[string]*approval.Approval),
		approvalStatus: make(map[string]approval.Status),
	}
}

func (s *memStore) seedOrder(o *order.PurchaseOrder) {
	s.orders[o.ID().String()] = o
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) Create() ports.UnitOfWork {
	return &memUoW{store: f.store}
}

type memUoW struct {
	store *memStore
}

func (u *memUoW) Begin(context.Context) error    { return nil }
func (u *memUoW) Commit(context.Context) error   { return nil }
func (u *memUoW) Rollback(context.Context) error { return nil }

func (u *memUoW) OrderRepository() ports.OrderRepository       { return &memOrderRepo{u.store} }
func (u *memUoW) ApprovalRepository() ports.ApprovalRepository { return &memApprovalRepo{u.store} }
func (u *memUoW) DeliveryRepository() ports.DeliveryRepository { return &memDeliveryRepo{u.store} }

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Add(_ context.Context, aggregate *order.PurchaseOrder) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, aggregate *order.PurchaseOrder) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.PurchaseOrder, error) {
	aggregate, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return aggregate, nil
}

func (r *memOrderRepo) FindPendingApproval(context.Context) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	for _, o := range r.store.orders {
		if o.Status() == order.PendingApproval {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindBySupplier(
	_ context.Context,
	supplierID kernel.UUID,
	statuses ...order.Status,
) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	for _, o := range r.store.orders {
		if !o.SupplierID().IsEqual(supplierID) {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, o)
			continue
		}
		for _, s := range statuses {
			if o.Status() == s {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (r *memOrderRepo) Search(context.Context, ports.OrderSearchCriteria) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	for _, o := range r.store.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) Statistics(context.Context, *time.Time, *time.Time) (ports.OrderStatistics, error) {
	stats := ports.OrderStatistics{
		TotalCount:    int64(len(r.store.orders)),
		TotalPayable:  kernel.ZeroMoney(),
		CountByStatus: make(map[order.Status]int64),
	}
	for _, o := range r.store.orders {
		stats.CountByStatus[o.Status()]++
	}
	return stats, nil
}

type memApprovalRepo struct{ store *memStore }

func (r *memApprovalRepo) Add(_ context.Context, record *approval.Approval) error {
	r.store.approvals[record.ID().String()] = record
	r.store.approvalStatus[record.ID().String()] = record.Status()
	return nil
}

func (r *memApprovalRepo) AddBatch(ctx context.Context, records []*approval.Approval) error {
	for _, record := range records {
		if err := r.Add(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (r *memApprovalRepo) Update(_ context.Context, record *approval.Approval) error {
	committed, ok := r.store.approvalStatus[record.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("approvalID", record.ID())
	}
	if committed != approval.Pending {
		return ports.ErrApprovalAlreadyResolved
	}
	r.store.approvals[record.ID().String()] = record
	r.store.approvalStatus[record.ID().String()] = record.Status()
	return nil
}

func (r *memApprovalRepo) Get(_ context.Context, id kernel.UUID) (*approval.Approval, error) {
	record, ok := r.store.approvals[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("approvalID", id)
	}
	return record, nil
}

func (r *memApprovalRepo) FindPendingApprovals(context.Context, string) ([]*approval.Approval, error) {
	var out []*approval.Approval
	for id, record := range r.store.approvals {
		if r.store.approvalStatus[id] == approval.Pending {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence() < out[j].Sequence() })
	return out, nil
}

func (r *memApprovalRepo) FindByOrder(_ context.Context, orderID kernel.UUID) ([]*approval.Approval, error) {
	var out []*approval.Approval
	for _, record := range r.store.approvals {
		if record.OrderID().IsEqual(orderID) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence() < out[j].Sequence() })
	return out, nil
}

type memDeliveryRepo struct{ store *memStore }

func (r *memDeliveryRepo) Add(_ context.Context, batch *delivery.Delivery) error {
	r.store.deliveries = append(r.store.deliveries, batch)
	return nil
}

func (r *memDeliveryRepo) Update(_ context.Context, batch *delivery.Delivery) error {
	for i, existing := range r.store.deliveries {
		if existing.ID().IsEqual(batch.ID()) {
			r.store.deliveries[i] = batch
			return nil
		}
	}
	return errs.NewObjectNotFoundError("deliveryID", batch.ID())
}

func (r *memDeliveryRepo) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	for _, batch := range r.store.deliveries {
		if batch.ID().IsEqual(id) {
			return batch, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("deliveryID", id)
}

func (r *memDeliveryRepo) FindByOrder(_ context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	for _, batch := range r.store.deliveries {
		if batch.OrderID().IsEqual(orderID) {
			out = append(out, batch)
		}
	}
	return out, nil
}

func (r *memDeliveryRepo) FindInTransit(context.Context) ([]*delivery.Delivery, error) {
	return r.filterByStatus(delivery.InTransit), nil
}

func (r *memDeliveryRepo) FindPendingInspection(context.Context) ([]*delivery.Delivery, error) {
	return r.filterByStatus(delivery.Received), nil
}

func (r *memDeliveryRepo) FindPendingWarehousing(context.Context) ([]*delivery.Delivery, error) {
	return r.filterByStatus(delivery.Inspected), nil
}

func (r *memDeliveryRepo) filterByStatus(status delivery.Status) []*delivery.Delivery {
	var out []*delivery.Delivery
	for _, batch := range r.store.deliveries {
		if batch.Status() == status {
			out = append(out, batch)
		}
	}
	return out
}

func (r *memDeliveryRepo) Statistics(context.Context, *time.Time, *time.Time) (ports.DeliveryStatistics, error) {
	stats := ports.DeliveryStatistics{
		TotalCount:    int64(len(r.store.deliveries)),
		CountByStatus: make(map[delivery.Status]int64),
	}
	for _, batch := range r.store.deliveries {
		stats.CountByStatus[batch.Status()]++
	}
	return stats, nil
}

// statusChange captures one emitted OrderStatusChanged event.
type statusChange struct {
	OrderID   kernel.UUID
	OldStatus order.Status
	NewStatus order.Status
}

type recordingPublisher struct {
	created []kernel.UUID
	changes []statusChange
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, o *order.PurchaseOrder) {
	p.created = append(p.created, o.ID())
}

func (p *recordingPublisher) PublishOrderStatusChanged(
	_ context.Context,
	o *order.PurchaseOrder,
	oldStatus, newStatus order.Status,
) {
	p.changes = append(p.changes, statusChange{OrderID: o.ID(), OldStatus: oldStatus, NewStatus: newStatus})
}

type stubCatalog struct {
	products map[string]ports.CatalogProduct
}

func (c *stubCatalog) GetSKU(_ context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	product, ok := c.products[id.String()]
	if !ok {
		return ports.CatalogProduct{}, errs.NewObjectNotFoundError("skuID", id)
	}
	return product, nil
}

func (c *stubCatalog) GetSPU(_ context.Context, id kernel.UUID) (ports.CatalogProduct, error) {
	product, ok := c.products[id.String()]
	if !ok {
		return ports.CatalogProduct{}, errs.NewObjectNotFoundError("spuID", id)
	}
	return product, nil
}

type stubSuppliers struct {
	name string
}

func (s *stubSuppliers) GetSupplier(_ context.Context, id kernel.UUID) (ports.Supplier, error) {
	return ports.Supplier{ID: id, Name: s.name}, nil
}

func (s *stubSuppliers) ListActive(_ context.Context) ([]ports.Supplier, error) {
	return []ports.Supplier{{ID: kernel.NewUUID(), Name: s.name}}, nil
}

type sequentialNumbers struct {
	next int
}

func (g *sequentialNumbers) Next() string {
	g.next++
	return fmt.Sprintf("PO-TEST-%04d", g.next)
}
