package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var (
	ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
		"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
	)
	ErrStatisticsPeriodIsInverted = errors.New("statistics period end precedes start")
)

// GetOrderStatisticsQuery aggregates order counts and payable totals over an
// optional creation-time period. Nil bounds leave the period open.
type GetOrderStatisticsQuery struct { //nolint:recvcheck //using for validation
	startDate *time.Time
	endDate   *time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderStatisticsQuery creates a statistics query for the period.
// Returns an error when the end precedes the start.
func NewGetOrderStatisticsQuery(startDate, endDate *time.Time) (GetOrderStatisticsQuery, error) {
	query := GetOrderStatisticsQuery{guard: guard.NewConstructorGuard()}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return GetOrderStatisticsQuery{}, ErrStatisticsPeriodIsInverted
	}
	query.startDate = startDate
	query.endDate = endDate

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// StartDate returns the inclusive lower creation-time bound, if any.
func (q GetOrderStatisticsQuery) StartDate() *time.Time {
	return q.startDate
}

// EndDate returns the inclusive upper creation-time bound, if any.
func (q GetOrderStatisticsQuery) EndDate() *time.Time {
	return q.endDate
}

// GetOrderStatisticsQueryResponse carries the aggregated figures.
type GetOrderStatisticsQueryResponse struct {
	TotalCount    int64
	TotalPayable  string
	CountByStatus map[order.Status]int64
}
