package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/kernel"
)

// GetInTransitDeliveriesQueryHandler projects in-transit batches straight
// from the database.
type GetInTransitDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetInTransitDeliveriesQueryHandler creates a handler over the given
// GORM connection.
func NewGetInTransitDeliveriesQueryHandler(db *gorm.DB) GetInTransitDeliveriesQueryHandler {
	return GetInTransitDeliveriesQueryHandler{db: db}
}

// Handle returns all batches in transit ordered by ship time ascending.
func (h GetInTransitDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetInTransitDeliveriesQuery,
) ([]GetInTransitDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	batches := make([]GetInTransitDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			batch_number,
			logistics_company,
			tracking_number,
			ship_time,
			estimated_arrival_time
		FROM purchase_deliveries
		WHERE status = ?
		ORDER BY ship_time
	`, delivery.InTransit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetInTransitDeliveriesQueryResponse
		var id, orderID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&resp.BatchNumber,
			&resp.LogisticsCompany,
			&resp.TrackingNumber,
			&resp.ShipTime,
			&resp.EstimatedArrivalTime,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		batches = append(batches, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
