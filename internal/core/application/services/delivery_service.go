package services

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// DeliveryService drives delivery batches through the receiving pipeline and
// mirrors milestones onto the order: shipping and receiving move the order
// status, inspection stamps the receiving facts onto every line item, and
// warehousing the last batch completes the order.
type DeliveryService struct {
	uowFactory  ports.UnitOfWorkFactory
	transitions ports.DeliveryTransitionChecker
	orders      OrderTransitioner
	logger      *slog.Logger
	now         func() time.Time
}

// NewDeliveryService wires a DeliveryService from its collaborators.
func NewDeliveryService(
	uowFactory ports.UnitOfWorkFactory,
	transitions ports.DeliveryTransitionChecker,
	orders OrderTransitioner,
	logger *slog.Logger,
) *DeliveryService {
	return &DeliveryService{
		uowFactory:  uowFactory,
		transitions: transitions,
		orders:      orders,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateDelivery registers a new pending batch for the order.
func (s *DeliveryService) CreateDelivery(
	ctx context.Context,
	orderID kernel.UUID,
	batchNumber string,
) (*delivery.Delivery, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Requires an existing order; a batch never dangles.
	if _, err := uow.OrderRepository().Get(ctx, orderID); err != nil {
		return nil, err
	}

	batch, err := delivery.NewDelivery(kernel.NewUUID(), orderID, batchNumber)
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, batch); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return batch, nil
}

// MarkAsShipped records the shipping facts and asks the order to move to
// shipped. Returns false without mutation when the batch is not pending.
func (s *DeliveryService) MarkAsShipped(
	ctx context.Context,
	deliveryID kernel.UUID,
	logisticsCompany, trackingNumber string,
	estimatedArrival *time.Time,
) (bool, error) {
	batch, ok, err := s.advance(ctx, deliveryID, delivery.Ship, func(d *delivery.Delivery) bool {
		return d.StampShipped(s.now(), logisticsCompany, trackingNumber, estimatedArrival)
	}, nil)
	if err != nil || !ok {
		return false, err
	}

	s.cascadeOrder(ctx, batch.OrderID(), order.MarkShipped)
	return true, nil
}

// MarkInTransit moves a shipped batch into transit.
func (s *DeliveryService) MarkInTransit(ctx context.Context, deliveryID kernel.UUID) (bool, error) {
	_, ok, err := s.advance(ctx, deliveryID, delivery.MarkInTransit, func(d *delivery.Delivery) bool {
		return d.StampInTransit()
	}, nil)
	return ok, err
}

// MarkAsArrived records the actual arrival time.
func (s *DeliveryService) MarkAsArrived(ctx context.Context, deliveryID kernel.UUID) (bool, error) {
	_, ok, err := s.advance(ctx, deliveryID, delivery.Arrive, func(d *delivery.Delivery) bool {
		return d.StampArrived(s.now())
	}, nil)
	return ok, err
}

// ReceiveDelivery records who signed and how much arrived, then asks the
// order to move to received.
func (s *DeliveryService) ReceiveDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	receivedBy, deliveredQuantity string,
) (bool, error) {
	batch, ok, err := s.advance(ctx, deliveryID, delivery.Receive, func(d *delivery.Delivery) bool {
		return d.StampReceived(s.now(), receivedBy, deliveredQuantity)
	}, nil)
	if err != nil || !ok {
		return false, err
	}

	s.cascadeOrder(ctx, batch.OrderID(), order.MarkReceived)
	return true, nil
}

// InspectDelivery records the inspection outcome and stamps the batch's
// delivered and qualified quantities onto every line item of the order,
// marking each line received. An empty rejected quantity counts as zero.
func (s *DeliveryService) InspectDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	inspectedBy string,
	passed bool,
	qualifiedQuantity, rejectedQuantity, comment string,
) (bool, error) {
	if rejectedQuantity == "" {
		rejectedQuantity = "0"
	}

	_, ok, err := s.advance(ctx, deliveryID, delivery.Inspect, func(d *delivery.Delivery) bool {
		return d.StampInspected(s.now(), inspectedBy, passed, qualifiedQuantity, rejectedQuantity, comment)
	}, s.propagateToItems)
	return ok, err
}

// propagateToItems applies the batch's aggregate quantities to every item of
// the parent order uniformly, inside the same transaction as the inspection
// stamp.
func (s *DeliveryService) propagateToItems(ctx context.Context, uow ports.UnitOfWork, batch *delivery.Delivery) error {
	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, batch.OrderID())
	if err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		item.MarkReceived(batch.DeliveredQuantity(), batch.QualifiedQuantity())
	}
	aggregate.Touch(s.now())

	return repo.Update(ctx, aggregate)
}

// WarehouseDelivery records the storage facts and, when every batch of the
// order has now been warehoused, asks the order to complete.
func (s *DeliveryService) WarehouseDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
	warehousedBy, warehouseLocation string,
) (bool, error) {
	batch, ok, err := s.advance(ctx, deliveryID, delivery.WarehouseGoods, func(d *delivery.Delivery) bool {
		return d.StampWarehoused(s.now(), warehousedBy, warehouseLocation)
	}, nil)
	if err != nil || !ok {
		return false, err
	}

	allStored, err := s.allWarehoused(ctx, batch.OrderID())
	if err != nil {
		s.logger.WarnContext(ctx, "delivery cascade: scanning order batches failed",
			"order_id", batch.OrderID().String(), "error", err)
		return true, nil
	}
	if allStored {
		s.cascadeOrder(ctx, batch.OrderID(), order.Complete)
	}
	return true, nil
}

// advance runs one pipeline step: load, consult the checker, stamp, run the
// optional in-transaction side effect, persist, commit.
func (s *DeliveryService) advance(
	ctx context.Context,
	deliveryID kernel.UUID,
	t delivery.Transition,
	stamp func(*delivery.Delivery) bool,
	sideEffect func(context.Context, ports.UnitOfWork, *delivery.Delivery) error,
) (*delivery.Delivery, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	batch, err := repo.Get(ctx, deliveryID)
	if err != nil {
		return nil, false, err
	}

	if !s.transitions.Can(batch, t) {
		return nil, false, nil
	}
	if !stamp(batch) {
		return nil, false, nil
	}

	if err = repo.Update(ctx, batch); err != nil {
		return nil, false, err
	}
	if sideEffect != nil {
		if err = sideEffect(ctx, uow, batch); err != nil {
			return nil, false, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return batch, true, nil
}

// cascadeOrder asks the order to take the named transition, logging and
// swallowing refusals. A multi-batch order legitimately refuses repeat
// milestones after the first batch already moved it.
func (s *DeliveryService) cascadeOrder(ctx context.Context, orderID kernel.UUID, t order.Transition) {
	ok, err := s.orders.UpdateOrderStatus(ctx, orderID, t)
	if err != nil || !ok {
		s.logger.WarnContext(ctx, "delivery cascade: order transition refused",
			"order_id", orderID.String(), "transition", string(t), "applied", ok, "error", err)
	}
}

func (s *DeliveryService) allWarehoused(ctx context.Context, orderID kernel.UUID) (bool, error) {
	batches, err := s.FindByOrder(ctx, orderID)
	if err != nil {
		return false, err
	}

	for _, batch := range batches {
		if batch.Status() != delivery.Warehoused {
			return false, nil
		}
	}
	return true, nil
}

// GetDelivery retrieves one batch.
func (s *DeliveryService) GetDelivery(ctx context.Context, deliveryID kernel.UUID) (*delivery.Delivery, error) {
	var batch *delivery.Delivery
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		batch, err = repo.Get(ctx, deliveryID)
		return err
	})
	return batch, err
}

// FindByOrder lists an order's batches oldest first.
func (s *DeliveryService) FindByOrder(ctx context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		out, err = repo.FindByOrder(ctx, orderID)
		return err
	})
	return out, err
}

// FindInTransit lists every batch currently with the carrier.
func (s *DeliveryService) FindInTransit(ctx context.Context) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		out, err = repo.FindInTransit(ctx)
		return err
	})
	return out, err
}

// FindPendingInspection lists received batches awaiting inspection.
func (s *DeliveryService) FindPendingInspection(ctx context.Context) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		out, err = repo.FindPendingInspection(ctx)
		return err
	})
	return out, err
}

// FindPendingWarehousing lists inspected batches awaiting storage.
func (s *DeliveryService) FindPendingWarehousing(ctx context.Context) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		out, err = repo.FindPendingWarehousing(ctx)
		return err
	})
	return out, err
}

// DeliveryStatistics aggregates batch counts over the period.
func (s *DeliveryService) DeliveryStatistics(ctx context.Context, startDate, endDate *time.Time) (ports.DeliveryStatistics, error) {
	var out ports.DeliveryStatistics
	err := s.read(ctx, func(ctx context.Context, repo ports.DeliveryRepository) error {
		var err error
		out, err = repo.Statistics(ctx, startDate, endDate)
		return err
	})
	return out, err
}

func (s *DeliveryService) read(ctx context.Context, fn func(context.Context, ports.DeliveryRepository) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(ctx, uow.DeliveryRepository())
}
