package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// GetPendingApprovalOrdersQueryHandler projects orders awaiting approval
// straight from the database for approval worklists.
type GetPendingApprovalOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingApprovalOrdersQueryHandler creates a handler over the given
// GORM connection.
func NewGetPendingApprovalOrdersQueryHandler(db *gorm.DB) GetPendingApprovalOrdersQueryHandler {
	return GetPendingApprovalOrdersQueryHandler{db: db}
}

// Handle returns all pending-approval orders ordered by creation time
// ascending, so the longest-waiting order surfaces first.
func (h GetPendingApprovalOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingApprovalOrdersQuery,
) ([]GetPendingApprovalOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingApprovalOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			title,
			status,
			total_amount,
			payable_amount
		FROM purchase_orders
		WHERE status = ?
		ORDER BY create_time
	`, order.PendingApproval).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingApprovalOrdersQueryResponse
		var id uuid.UUID
		var status string

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Title,
			&status,
			&resp.TotalAmount,
			&resp.PayableAmount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
