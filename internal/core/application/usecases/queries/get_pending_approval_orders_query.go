// Package queries contains the read side of the procurement core: gorm-backed
// handlers that project directly from the database, bypassing the aggregates.
package queries

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrGetPendingApprovalOrdersQueryIsNotConstructed = errors.New(
	"GetPendingApprovalOrdersQuery must be created via NewGetPendingApprovalOrdersQuery constructor",
)

// GetPendingApprovalOrdersQuery retrieves every order currently awaiting
// approval, oldest submission first.
type GetPendingApprovalOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingApprovalOrdersQuery creates the parameterless query.
func NewGetPendingApprovalOrdersQuery() GetPendingApprovalOrdersQuery {
	return GetPendingApprovalOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingApprovalOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingApprovalOrdersQueryIsNotConstructed)
}

// GetPendingApprovalOrdersQueryResponse carries one order awaiting approval.
type GetPendingApprovalOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Title         string
	Status        order.Status
	TotalAmount   string
	PayableAmount string
}
