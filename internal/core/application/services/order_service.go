package services

import (
	"context"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// ItemInput describes one requested line on a new order. When SKUID or SPUID
// is set the catalog projection overwrites name, code and unit; otherwise the
// raw fields are used as supplied. Empty numeric fields keep the item
// defaults (quantity "1.0000", unit price "0.0000", tax rate "0.00").
type ItemInput struct {
	SKUID                *kernel.UUID
	SPUID                *kernel.UUID
	ProductName          string
	ProductCode          string
	Specification        string
	Quantity             string
	Unit                 string
	UnitPrice            string
	TaxRate              string
	ExpectedDeliveryDate *time.Time
	Remark               string
}

// OrderTransitioner is the slice of OrderService the cascading services need.
type OrderTransitioner interface {
	UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, t order.Transition) (bool, error)
	ApproveOrder(ctx context.Context, orderID kernel.UUID, approvedBy, comment string) (bool, error)
	RejectOrder(ctx context.Context, orderID kernel.UUID, reason string) (bool, error)
}

// OrderService creates purchase orders and executes their status machine,
// emitting lifecycle events on every successful mutation.
type OrderService struct {
	uowFactory  ports.UnitOfWorkFactory
	transitions ports.OrderTransitionChecker
	catalog     ports.CatalogLookup
	suppliers   ports.SupplierLookup
	numbers     ports.OrderNumberGenerator
	publisher   ports.EventPublisher
	now         func() time.Time
}

// NewOrderService wires an OrderService from its collaborators. The
// composition root installs the table-backed transition checker when no
// external workflow engine is configured.
func NewOrderService(
	uowFactory ports.UnitOfWorkFactory,
	transitions ports.OrderTransitionChecker,
	catalog ports.CatalogLookup,
	suppliers ports.SupplierLookup,
	numbers ports.OrderNumberGenerator,
	publisher ports.EventPublisher,
) *OrderService {
	return &OrderService{
		uowFactory:  uowFactory,
		transitions: transitions,
		catalog:     catalog,
		suppliers:   suppliers,
		numbers:     numbers,
		publisher:   publisher,
		now:         time.Now,
	}
}

// CreateOrder builds a draft order for the supplier with the requested lines,
// resolving catalog references, computing totals and persisting the whole
// aggregate in one transaction. An empty title defaults to a generated one
// carrying the supplier name. Emits OrderCreated after commit.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	supplierID kernel.UUID,
	title string,
	items []ItemInput,
) (*order.PurchaseOrder, error) {
	supplier, err := s.suppliers.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = fmt.Sprintf("采购订单 - %s", supplier.Name)
	}

	aggregate, err := order.NewPurchaseOrder(kernel.NewUUID(), s.numbers.Next(), title, supplier.ID, s.now())
	if err != nil {
		return nil, err
	}

	for _, input := range items {
		item, err := s.buildItem(ctx, input)
		if err != nil {
			return nil, err
		}
		aggregate.AddItem(item)
	}
	aggregate.CalculateTotalAmount()

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publisher.PublishOrderCreated(ctx, aggregate)
	return aggregate, nil
}

func (s *OrderService) buildItem(ctx context.Context, input ItemInput) (*order.Item, error) {
	item, err := order.NewItem(kernel.NewUUID(), input.ProductName)
	if err != nil {
		return nil, err
	}

	switch {
	case input.SKUID != nil:
		product, err := s.catalog.GetSKU(ctx, *input.SKUID)
		if err != nil {
			return nil, err
		}
		item.ApplyCatalogProduct(input.SKUID, input.SPUID, product.ProductName, product.ProductCode, product.Unit)
	case input.SPUID != nil:
		product, err := s.catalog.GetSPU(ctx, *input.SPUID)
		if err != nil {
			return nil, err
		}
		item.ApplyCatalogProduct(nil, input.SPUID, product.ProductName, product.ProductCode, product.Unit)
	default:
		item.SetProductCode(input.ProductCode)
	}

	item.SetSpecification(input.Specification)
	if input.Unit != "" {
		item.SetUnit(input.Unit)
	}
	if input.Quantity != "" {
		item.SetQuantity(input.Quantity)
	}
	if input.UnitPrice != "" {
		item.SetUnitPrice(input.UnitPrice)
	}
	if input.TaxRate != "" {
		if err = item.SetTaxRate(input.TaxRate); err != nil {
			return nil, err
		}
	}
	item.SetExpectedDeliveryDate(input.ExpectedDeliveryDate)
	item.SetRemark(input.Remark)
	return item, nil
}

// UpdateOrderStatus attempts the named transition on the order. Returns
// false without mutation when the current state does not permit it. On
// success the order is persisted and OrderStatusChanged is emitted.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, t order.Transition) (bool, error) {
	return s.transition(ctx, orderID, t, nil)
}

// SubmitForApproval moves a draft or rejected order into pending approval.
func (s *OrderService) SubmitForApproval(ctx context.Context, orderID kernel.UUID) (bool, error) {
	return s.transition(ctx, orderID, order.SubmitForApproval, nil)
}

// ApproveOrder applies the approve transition and, only when it succeeds,
// stamps the approver, time and comment.
func (s *OrderService) ApproveOrder(ctx context.Context, orderID kernel.UUID, approvedBy, comment string) (bool, error) {
	return s.transition(ctx, orderID, order.Approve, func(o *order.PurchaseOrder) {
		o.StampApproved(approvedBy, s.now(), comment)
	})
}

// RejectOrder applies the reject transition and, only when it succeeds,
// records the rejection reason.
func (s *OrderService) RejectOrder(ctx context.Context, orderID kernel.UUID, reason string) (bool, error) {
	return s.transition(ctx, orderID, order.Reject, func(o *order.PurchaseOrder) {
		o.StampRejected(reason)
	})
}

// CancelOrder applies the cancel transition and, only when it succeeds,
// records the cancellation reason and time.
func (s *OrderService) CancelOrder(ctx context.Context, orderID kernel.UUID, reason string) (bool, error) {
	return s.transition(ctx, orderID, order.Cancel, func(o *order.PurchaseOrder) {
		o.StampCancelled(reason, s.now())
	})
}

// transition loads the order, consults the checker, applies the transition
// plus an optional stamp, persists and publishes. The stamp only runs after
// the transition succeeded, so no metadata ever lands on a refused change.
func (s *OrderService) transition(
	ctx context.Context,
	orderID kernel.UUID,
	t order.Transition,
	stamp func(*order.PurchaseOrder),
) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return false, err
	}

	oldStatus := aggregate.Status()
	if !s.transitions.Apply(aggregate, t) {
		return false, nil
	}
	if stamp != nil {
		stamp(aggregate)
	}
	aggregate.Touch(s.now())

	if err = repo.Update(ctx, aggregate); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	s.publisher.PublishOrderStatusChanged(ctx, aggregate, oldStatus, aggregate.Status())
	return true, nil
}

// GetOrder retrieves an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, orderID kernel.UUID) (*order.PurchaseOrder, error) {
	var aggregate *order.PurchaseOrder
	err := s.read(ctx, func(ctx context.Context, repo ports.OrderRepository) error {
		var err error
		aggregate, err = repo.Get(ctx, orderID)
		return err
	})
	return aggregate, err
}

// FindPendingApprovalOrders lists orders awaiting approval, oldest first.
func (s *OrderService) FindPendingApprovalOrders(ctx context.Context) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	err := s.read(ctx, func(ctx context.Context, repo ports.OrderRepository) error {
		var err error
		out, err = repo.FindPendingApproval(ctx)
		return err
	})
	return out, err
}

// FindOrdersBySupplier lists a supplier's orders, optionally narrowed to the
// given statuses.
func (s *OrderService) FindOrdersBySupplier(
	ctx context.Context,
	supplierID kernel.UUID,
	statuses ...order.Status,
) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	err := s.read(ctx, func(ctx context.Context, repo ports.OrderRepository) error {
		var err error
		out, err = repo.FindBySupplier(ctx, supplierID, statuses...)
		return err
	})
	return out, err
}

// SearchOrders lists orders matching the criteria, newest first.
func (s *OrderService) SearchOrders(ctx context.Context, criteria ports.OrderSearchCriteria) ([]*order.PurchaseOrder, error) {
	var out []*order.PurchaseOrder
	err := s.read(ctx, func(ctx context.Context, repo ports.OrderRepository) error {
		var err error
		out, err = repo.Search(ctx, criteria)
		return err
	})
	return out, err
}

// OrderStatistics aggregates counts and payable totals over the period.
func (s *OrderService) OrderStatistics(ctx context.Context, startDate, endDate *time.Time) (ports.OrderStatistics, error) {
	var out ports.OrderStatistics
	err := s.read(ctx, func(ctx context.Context, repo ports.OrderRepository) error {
		var err error
		out, err = repo.Statistics(ctx, startDate, endDate)
		return err
	})
	return out, err
}

func (s *OrderService) read(ctx context.Context, fn func(context.Context, ports.OrderRepository) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(ctx, uow.OrderRepository())
}
