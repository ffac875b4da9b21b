package queries

import (
	"context"

	"gorm.io/gorm"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// GetOrderStatisticsQueryHandler aggregates order figures in the database,
// grouping by status so the report never loads aggregates into memory.
type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatisticsQueryHandler creates a handler over the given GORM
// connection.
func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

// Handle returns order counts per status plus the summed payable amount for
// orders created inside the query's period.
func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	stmt := `
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(payable_amount), 0)
		FROM purchase_orders
	`
	var args []any
	switch {
	case query.StartDate() != nil && query.EndDate() != nil:
		stmt += " WHERE create_time BETWEEN ? AND ?"
		args = append(args, *query.StartDate(), *query.EndDate())
	case query.StartDate() != nil:
		stmt += " WHERE create_time >= ?"
		args = append(args, *query.StartDate())
	case query.EndDate() != nil:
		stmt += " WHERE create_time <= ?"
		args = append(args, *query.EndDate())
	}
	stmt += " GROUP BY status"

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}
	defer rows.Close()

	response := GetOrderStatisticsQueryResponse{
		TotalPayable:  kernel.ZeroMoney(),
		CountByStatus: make(map[order.Status]int64),
	}
	payable := kernel.MustAmount(kernel.ZeroMoney())

	for rows.Next() {
		var status string
		var count int64
		var sum string

		if err = rows.Scan(&status, &count, &sum); err != nil {
			return GetOrderStatisticsQueryResponse{}, err
		}

		response.TotalCount += count
		response.CountByStatus[order.Status(status)] = count
		payable = payable.Add(kernel.MustAmount(sum))
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	response.TotalPayable = kernel.RoundMoney(payable)
	return response, nil
}
