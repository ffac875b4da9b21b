// Package http exposes the procurement application services as a JSON API.
package http

import (
	"errors"
	"net/http"
	"time"

	"procurement/internal/core/application/services"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and the application layer.
// Mutations and aggregate reads go through the services; the hot list and
// statistics endpoints go through the dedicated query handlers.
type Server struct {
	orders     *services.OrderService
	approvals  *services.ApprovalService
	deliveries *services.DeliveryService
	suppliers  ports.SupplierLookup

	pendingOrdersHandler queries.GetPendingApprovalOrdersQueryHandler
	inTransitHandler     queries.GetInTransitDeliveriesQueryHandler
	orderStatsHandler    queries.GetOrderStatisticsQueryHandler
}

// NewServer creates an HTTP server over the application services and query
// handlers.
func NewServer(
	orders *services.OrderService,
	approvals *services.ApprovalService,
	deliveries *services.DeliveryService,
	suppliers ports.SupplierLookup,
	pendingOrdersHandler queries.GetPendingApprovalOrdersQueryHandler,
	inTransitHandler queries.GetInTransitDeliveriesQueryHandler,
	orderStatsHandler queries.GetOrderStatisticsQueryHandler,
) *Server {
	return &Server{
		orders:               orders,
		approvals:            approvals,
		deliveries:           deliveries,
		suppliers:            suppliers,
		pendingOrdersHandler: pendingOrdersHandler,
		inTransitHandler:     inTransitHandler,
		orderStatsHandler:    orderStatsHandler,
	}
}

// RegisterRoutes mounts every handler under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.SearchOrders)
	api.GET("/orders/pending-approval", s.GetPendingApprovalOrders)
	api.GET("/orders/statistics", s.GetOrderStatistics)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/submit", s.SubmitOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/approvals", s.GetApprovalHistory)
	api.GET("/orders/:id/deliveries", s.GetOrderDeliveries)

	api.GET("/suppliers", s.GetActiveSuppliers)

	api.GET("/approvals/pending", s.GetPendingApprovals)
	api.POST("/approvals/:id/decision", s.DecideApproval)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/in-transit", s.GetInTransitDeliveries)
	api.GET("/deliveries/pending-inspection", s.GetPendingInspectionDeliveries)
	api.GET("/deliveries/pending-warehousing", s.GetPendingWarehousingDeliveries)
	api.GET("/deliveries/statistics", s.GetDeliveryStatistics)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.POST("/deliveries/:id/ship", s.ShipDelivery)
	api.POST("/deliveries/:id/transit", s.MarkDeliveryInTransit)
	api.POST("/deliveries/:id/arrive", s.MarkDeliveryArrived)
	api.POST("/deliveries/:id/receive", s.ReceiveDelivery)
	api.POST("/deliveries/:id/inspect", s.InspectDelivery)
	api.POST("/deliveries/:id/warehouse", s.WarehouseDelivery)
}

// pathUUID parses the :id path parameter.
func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// optionalDecimal reports whether a request field is empty or parses as a
// decimal string. The domain setters panic on malformed numbers, so every
// numeric request field is checked here before the services see it.
func optionalDecimal(s string) bool {
	return s == "" || kernel.IsDecimal(s)
}

// parsePeriod reads optional startDate/endDate query parameters in
// YYYY-MM-DD form. An absent parameter leaves that bound open.
func parsePeriod(ctx echo.Context) (startDate, endDate *time.Time, err error) {
	if raw := ctx.QueryParam("startDate"); raw != "" {
		parsed, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return nil, nil, errs.NewValueIsInvalidErrorWithCause("startDate", parseErr)
		}
		startDate = &parsed
	}
	if raw := ctx.QueryParam("endDate"); raw != "" {
		parsed, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return nil, nil, errs.NewValueIsInvalidErrorWithCause("endDate", parseErr)
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}

// fail maps a domain error onto an HTTP status and writes the error
// envelope. Missing aggregates map to 404, rejected input to 400, everything
// else to 500.
func fail(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case isBadInput(err):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func isBadInput(err error) bool {
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	return errors.As(err, &invalid) || errors.As(err, &required) || errors.As(err, &outOfRange)
}

// badRequest writes a 400 envelope with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// conflict writes a 409 envelope for a refused state transition.
func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}
