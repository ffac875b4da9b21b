package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetInTransitDeliveriesQueryIsNotConstructed = errors.New(
	"GetInTransitDeliveriesQuery must be created via NewGetInTransitDeliveriesQuery constructor",
)

// GetInTransitDeliveriesQuery retrieves every delivery batch currently with
// the carrier, for the tracking sweep and the operations dashboard.
type GetInTransitDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetInTransitDeliveriesQuery creates the parameterless query.
func NewGetInTransitDeliveriesQuery() GetInTransitDeliveriesQuery {
	return GetInTransitDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetInTransitDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetInTransitDeliveriesQueryIsNotConstructed)
}

// GetInTransitDeliveriesQueryResponse carries one batch in transit.
type GetInTransitDeliveriesQueryResponse struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	BatchNumber          string
	LogisticsCompany     string
	TrackingNumber       string
	ShipTime             *time.Time
	EstimatedArrivalTime *time.Time
}
