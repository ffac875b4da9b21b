package cmd

import (
	"log/slog"
	"os"

	"procurement/internal/adapters/out/directory"
	"procurement/internal/adapters/out/eventlog"
	"procurement/internal/adapters/out/idgen"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/core/application/services"
	"procurement/internal/core/application/usecases/queries"
	domainservices "procurement/internal/core/domain/services"
	"procurement/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot assembles every adapter and service once at startup.
// Handlers and jobs receive their collaborators fully wired from here.
type CompositionRoot struct {
	gormDB *gorm.DB
	logger *slog.Logger

	catalog   *directory.StaticCatalog
	suppliers *directory.StaticSuppliers

	orderService    *services.OrderService
	approvalService *services.ApprovalService
	deliveryService *services.DeliveryService
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	publisher := eventlog.NewSlogEventPublisher(logger)
	catalog := directory.NewStaticCatalog()
	suppliers := directory.NewStaticSuppliers()

	orderService := services.NewOrderService(
		uowFactory,
		domainservices.NewOrderTransitions(),
		catalog,
		suppliers,
		idgen.NewTimeSeededOrderNumberGenerator(),
		publisher,
	)
	approvalService := services.NewApprovalService(
		uowFactory,
		domainservices.NewApprovalTransitions(),
		orderService,
		logger,
	)
	deliveryService := services.NewDeliveryService(
		uowFactory,
		domainservices.NewDeliveryTransitions(),
		orderService,
		logger,
	)

	return CompositionRoot{
		gormDB:          gormDB,
		logger:          logger,
		catalog:         catalog,
		suppliers:       suppliers,
		orderService:    orderService,
		approvalService: approvalService,
		deliveryService: deliveryService,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Catalog exposes the product directory for seeding reference data.
func (c *CompositionRoot) Catalog() *directory.StaticCatalog {
	return c.catalog
}

// Suppliers exposes the supplier directory for seeding reference data.
func (c *CompositionRoot) Suppliers() *directory.StaticSuppliers {
	return c.suppliers
}

func (c *CompositionRoot) OrderService() *services.OrderService {
	return c.orderService
}

func (c *CompositionRoot) ApprovalService() *services.ApprovalService {
	return c.approvalService
}

func (c *CompositionRoot) DeliveryService() *services.DeliveryService {
	return c.deliveryService
}

func (c *CompositionRoot) CreateGetPendingApprovalOrdersQueryHandler() queries.GetPendingApprovalOrdersQueryHandler {
	return queries.NewGetPendingApprovalOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInTransitDeliveriesQueryHandler() queries.GetInTransitDeliveriesQueryHandler {
	return queries.NewGetInTransitDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.deliveryService, c.approvalService, c.logger)
}
