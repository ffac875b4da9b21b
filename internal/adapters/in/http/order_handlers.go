package http

import (
	"net/http"

	"procurement/internal/core/application/services"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// CreateOrderItemRequest is one requested line on a new order.
type CreateOrderItemRequest struct {
	SKUID         string `json:"skuId"`
	SPUID         string `json:"spuId"`
	ProductName   string `json:"productName"`
	ProductCode   string `json:"productCode"`
	Specification string `json:"specification"`
	Quantity      string `json:"quantity"`
	Unit          string `json:"unit"`
	UnitPrice     string `json:"unitPrice"`
	TaxRate       string `json:"taxRate"`
	Remark        string `json:"remark"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	SupplierID string                   `json:"supplierId"`
	Title      string                   `json:"title"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	supplierID, err := kernel.UUIDFromString(request.SupplierID)
	if err != nil {
		return badRequest(ctx, "invalid supplier id")
	}

	items := make([]services.ItemInput, 0, len(request.Items))
	for _, line := range request.Items {
		if !optionalDecimal(line.Quantity) {
			return badRequest(ctx, "invalid quantity")
		}
		if !optionalDecimal(line.UnitPrice) {
			return badRequest(ctx, "invalid unit price")
		}
		if !optionalDecimal(line.TaxRate) {
			return badRequest(ctx, "invalid tax rate")
		}

		input := services.ItemInput{
			ProductName:   line.ProductName,
			ProductCode:   line.ProductCode,
			Specification: line.Specification,
			Quantity:      line.Quantity,
			Unit:          line.Unit,
			UnitPrice:     line.UnitPrice,
			TaxRate:       line.TaxRate,
			Remark:        line.Remark,
		}
		if line.SKUID != "" {
			skuID, idErr := kernel.UUIDFromString(line.SKUID)
			if idErr != nil {
				return badRequest(ctx, "invalid sku id")
			}
			input.SKUID = &skuID
		}
		if line.SPUID != "" {
			spuID, idErr := kernel.UUIDFromString(line.SPUID)
			if idErr != nil {
				return badRequest(ctx, "invalid spu id")
			}
			input.SPUID = &spuID
		}
		items = append(items, input)
	}

	created, err := s.orders.CreateOrder(ctx.Request().Context(), supplierID, request.Title, items)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	aggregate, err := s.orders.GetOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// SearchOrders handles GET /api/v1/orders with optional orderNumber, title,
// supplierId and status query parameters.
func (s *Server) SearchOrders(ctx echo.Context) error {
	criteria := ports.OrderSearchCriteria{
		OrderNumber: ctx.QueryParam("orderNumber"),
		Title:       ctx.QueryParam("title"),
	}

	if raw := ctx.QueryParam("supplierId"); raw != "" {
		supplierID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid supplier id")
		}
		criteria.SupplierID = &supplierID
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status := order.Status(raw)
		if !status.IsValid() {
			return badRequest(ctx, "invalid order status")
		}
		criteria.Statuses = []order.Status{status}
	}

	found, err := s.orders.SearchOrders(ctx.Request().Context(), criteria)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersToResponse(found))
}

// PendingApprovalOrderResponse is the JSON projection of the pending
// approval worklist.
type PendingApprovalOrderResponse struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"orderNumber"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	TotalAmount   string `json:"totalAmount"`
	PayableAmount string `json:"payableAmount"`
}

// GetPendingApprovalOrders handles GET /api/v1/orders/pending-approval.
func (s *Server) GetPendingApprovalOrders(ctx echo.Context) error {
	found, err := s.pendingOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetPendingApprovalOrdersQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]PendingApprovalOrderResponse, 0, len(found))
	for _, row := range found {
		response = append(response, PendingApprovalOrderResponse{
			ID:            row.ID.String(),
			OrderNumber:   row.OrderNumber,
			Title:         row.Title,
			Status:        row.Status.String(),
			TotalAmount:   row.TotalAmount,
			PayableAmount: row.PayableAmount,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStatistics handles GET /api/v1/orders/statistics with optional
// startDate/endDate query parameters.
func (s *Server) GetOrderStatistics(ctx echo.Context) error {
	startDate, endDate, err := parsePeriod(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetOrderStatisticsQuery(startDate, endDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stats, err := s.orderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	countByStatus := make(map[string]int64, len(stats.CountByStatus))
	for status, count := range stats.CountByStatus {
		countByStatus[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"totalCount":    stats.TotalCount,
		"totalPayable":  stats.TotalPayable,
		"countByStatus": countByStatus,
	})
}

// SubmitOrder handles POST /api/v1/orders/:id/submit. Submitting moves the
// order into pending approval and opens its amount-tiered approval chain.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	applied, err := s.orders.SubmitForApproval(ctx.Request().Context(), orderID)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "order cannot be submitted in its current status")
	}

	records, err := s.approvals.CreateApprovalFlow(ctx.Request().Context(), orderID, nil)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, approvalsToResponse(records))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	applied, err := s.orders.CancelOrder(ctx.Request().Context(), orderID, request.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "order cannot be cancelled in its current status")
	}

	return ctx.NoContent(http.StatusNoContent)
}
