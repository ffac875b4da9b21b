package http

import (
	"net/http"
	"time"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateDeliveryRequest is the body of POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	OrderID     string `json:"orderId"`
	BatchNumber string `json:"batchNumber"`
}

// ShipDeliveryRequest is the body of POST /api/v1/deliveries/:id/ship.
type ShipDeliveryRequest struct {
	LogisticsCompany string `json:"logisticsCompany"`
	TrackingNumber   string `json:"trackingNumber"`
	EstimatedArrival string `json:"estimatedArrival"`
}

// ReceiveDeliveryRequest is the body of POST /api/v1/deliveries/:id/receive.
type ReceiveDeliveryRequest struct {
	ReceivedBy        string `json:"receivedBy"`
	DeliveredQuantity string `json:"deliveredQuantity"`
}

// InspectDeliveryRequest is the body of POST /api/v1/deliveries/:id/inspect.
type InspectDeliveryRequest struct {
	InspectedBy       string `json:"inspectedBy"`
	Passed            bool   `json:"passed"`
	QualifiedQuantity string `json:"qualifiedQuantity"`
	RejectedQuantity  string `json:"rejectedQuantity"`
	Comment           string `json:"comment"`
}

// WarehouseDeliveryRequest is the body of POST /api/v1/deliveries/:id/warehouse.
type WarehouseDeliveryRequest struct {
	WarehousedBy      string `json:"warehousedBy"`
	WarehouseLocation string `json:"warehouseLocation"`
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	batch, err := s.deliveries.CreateDelivery(ctx.Request().Context(), orderID, request.BatchNumber)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryToResponse(batch))
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	batch, err := s.deliveries.GetDelivery(ctx.Request().Context(), deliveryID)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(batch))
}

// GetOrderDeliveries handles GET /api/v1/orders/:id/deliveries.
func (s *Server) GetOrderDeliveries(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	batches, err := s.deliveries.FindByOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveriesToResponse(batches))
}

// InTransitDeliveryResponse is the JSON projection of the in-transit
// tracking worklist.
type InTransitDeliveryResponse struct {
	ID                   string     `json:"id"`
	OrderID              string     `json:"orderId"`
	BatchNumber          string     `json:"batchNumber"`
	LogisticsCompany     string     `json:"logisticsCompany,omitempty"`
	TrackingNumber       string     `json:"trackingNumber,omitempty"`
	ShipTime             *time.Time `json:"shipTime,omitempty"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime,omitempty"`
}

// GetInTransitDeliveries handles GET /api/v1/deliveries/in-transit.
func (s *Server) GetInTransitDeliveries(ctx echo.Context) error {
	found, err := s.inTransitHandler.Handle(
		ctx.Request().Context(), queries.NewGetInTransitDeliveriesQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]InTransitDeliveryResponse, 0, len(found))
	for _, row := range found {
		response = append(response, InTransitDeliveryResponse{
			ID:                   row.ID.String(),
			OrderID:              row.OrderID.String(),
			BatchNumber:          row.BatchNumber,
			LogisticsCompany:     row.LogisticsCompany,
			TrackingNumber:       row.TrackingNumber,
			ShipTime:             row.ShipTime,
			EstimatedArrivalTime: row.EstimatedArrivalTime,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingInspectionDeliveries handles GET /api/v1/deliveries/pending-inspection.
func (s *Server) GetPendingInspectionDeliveries(ctx echo.Context) error {
	batches, err := s.deliveries.FindPendingInspection(ctx.Request().Context())
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveriesToResponse(batches))
}

// GetPendingWarehousingDeliveries handles GET /api/v1/deliveries/pending-warehousing.
func (s *Server) GetPendingWarehousingDeliveries(ctx echo.Context) error {
	batches, err := s.deliveries.FindPendingWarehousing(ctx.Request().Context())
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveriesToResponse(batches))
}

// GetDeliveryStatistics handles GET /api/v1/deliveries/statistics with
// optional startDate/endDate query parameters.
func (s *Server) GetDeliveryStatistics(ctx echo.Context) error {
	startDate, endDate, err := parsePeriod(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	stats, err := s.deliveries.DeliveryStatistics(ctx.Request().Context(), startDate, endDate)
	if err != nil {
		return fail(ctx, err)
	}

	countByStatus := make(map[string]int64, len(stats.CountByStatus))
	for status, count := range stats.CountByStatus {
		countByStatus[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"totalCount":    stats.TotalCount,
		"countByStatus": countByStatus,
	})
}

// ShipDelivery handles POST /api/v1/deliveries/:id/ship.
func (s *Server) ShipDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var request ShipDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var estimatedArrival *time.Time
	if request.EstimatedArrival != "" {
		parsed, parseErr := time.Parse(time.RFC3339, request.EstimatedArrival)
		if parseErr != nil {
			return fail(ctx, errs.NewValueIsInvalidErrorWithCause("estimatedArrival", parseErr))
		}
		estimatedArrival = &parsed
	}

	applied, err := s.deliveries.MarkAsShipped(
		ctx.Request().Context(), deliveryID, request.LogisticsCompany, request.TrackingNumber, estimatedArrival)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot be shipped in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDeliveryInTransit handles POST /api/v1/deliveries/:id/transit.
func (s *Server) MarkDeliveryInTransit(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	applied, err := s.deliveries.MarkInTransit(ctx.Request().Context(), deliveryID)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot enter transit in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDeliveryArrived handles POST /api/v1/deliveries/:id/arrive.
func (s *Server) MarkDeliveryArrived(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	applied, err := s.deliveries.MarkAsArrived(ctx.Request().Context(), deliveryID)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot arrive in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveDelivery handles POST /api/v1/deliveries/:id/receive.
func (s *Server) ReceiveDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var request ReceiveDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if !kernel.IsDecimal(request.DeliveredQuantity) {
		return badRequest(ctx, "invalid delivered quantity")
	}

	applied, err := s.deliveries.ReceiveDelivery(
		ctx.Request().Context(), deliveryID, request.ReceivedBy, request.DeliveredQuantity)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot be received in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InspectDelivery handles POST /api/v1/deliveries/:id/inspect.
func (s *Server) InspectDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var request InspectDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if !kernel.IsDecimal(request.QualifiedQuantity) {
		return badRequest(ctx, "invalid qualified quantity")
	}
	if !optionalDecimal(request.RejectedQuantity) {
		return badRequest(ctx, "invalid rejected quantity")
	}

	applied, err := s.deliveries.InspectDelivery(
		ctx.Request().Context(), deliveryID,
		request.InspectedBy, request.Passed,
		request.QualifiedQuantity, request.RejectedQuantity, request.Comment)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot be inspected in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// WarehouseDelivery handles POST /api/v1/deliveries/:id/warehouse.
func (s *Server) WarehouseDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var request WarehouseDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	applied, err := s.deliveries.WarehouseDelivery(
		ctx.Request().Context(), deliveryID, request.WarehousedBy, request.WarehouseLocation)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "delivery cannot be warehoused in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}
