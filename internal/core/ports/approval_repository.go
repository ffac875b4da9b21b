package ports

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/kernel"
)

// ErrApprovalAlreadyResolved reports a lost race on a guarded approval
// update: another resolver moved the record out of pending first.
var ErrApprovalAlreadyResolved = errors.New("approval already resolved")

// ApprovalRepository defines the persistence contract for approval records.
type ApprovalRepository interface {
	// Add persists a new approval record.
	Add(ctx context.Context, aggregate *approval.Approval) error

	// AddBatch persists a whole approval chain. All records are written in
	// one statement so the chain appears all-or-nothing to readers.
	AddBatch(ctx context.Context, aggregates []*approval.Approval) error

	// Update persists a resolved or cancelled record. The write is guarded:
	// it only applies when the stored row is still pending, so two racing
	// resolvers see exactly one winner. The loser gets ErrApprovalAlreadyResolved.
	Update(ctx context.Context, aggregate *approval.Approval) error

	// Get retrieves an approval record by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*approval.Approval, error)

	// FindPendingApprovals retrieves all pending records, ordered by
	// creation time ascending, optionally filtered to one approver role or
	// approver ID.
	FindPendingApprovals(ctx context.Context, approverID string) ([]*approval.Approval, error)

	// FindByOrder retrieves an order's approval history, ordered by
	// sequence ascending then creation time ascending.
	FindByOrder(ctx context.Context, orderID kernel.UUID) ([]*approval.Approval, error)
}
