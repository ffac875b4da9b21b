package services_test

import (
	"io"
	"log/slog"

	"procurement/internal/core/application/services"
	domainservices "procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
)

// fixture wires the three services over one shared in-memory store with the
// table-backed transition checkers.
type fixture struct {
	store      *memStore
	publisher  *recordingPublisher
	catalog    *stubCatalog
	orders     *services.OrderService
	approvals  *services.ApprovalService
	deliveries *services.DeliveryService
}

func newFixture() *fixture {
	store := newMemStore()
	factory := &memFactory{store: store}
	publisher := &recordingPublisher{}
	catalog := &stubCatalog{products: make(map[string]ports.CatalogProduct)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orders := services.NewOrderService(
		factory,
		domainservices.NewOrderTransitions(),
		catalog,
		&stubSuppliers{name: "华东电子"},
		&sequentialNumbers{},
		publisher,
	)

	return &fixture{
		store:      store,
		publisher:  publisher,
		catalog:    catalog,
		orders:     orders,
		approvals:  services.NewApprovalService(factory, domainservices.NewApprovalTransitions(), orders, logger),
		deliveries: services.NewDeliveryService(factory, domainservices.NewDeliveryTransitions(), orders, logger),
	}
}
