package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
)

// Amount thresholds for approval chain tiering, in order currency.
const (
	singleLevelThreshold = 10000
	twoLevelThreshold    = 50000
)

// ApprovalLevel describes one step of an approval chain to be created. An
// empty AmountLimit means unlimited authority; an empty Level gets the
// generic label.
type ApprovalLevel struct {
	Level              string
	Role               string
	AmountLimit        string
	RequireCountersign bool
}

// ApprovalLevelsForAmount maps an order total to the required approval chain:
// below 10000 one manager level limited to 10000; below 50000 manager plus
// finance, each limited to 50000; from 50000 up manager, finance and director
// with unlimited authority.
func ApprovalLevelsForAmount(amount string) []ApprovalLevel {
	total := kernel.MustAmount(amount)

	if total.LessThan(decimal.NewFromInt(singleLevelThreshold)) {
		return []ApprovalLevel{
			{Level: "部门经理审批", Role: "ROLE_MANAGER", AmountLimit: "10000"},
		}
	}
	if total.LessThan(decimal.NewFromInt(twoLevelThreshold)) {
		return []ApprovalLevel{
			{Level: "部门经理审批", Role: "ROLE_MANAGER", AmountLimit: "50000"},
			{Level: "财务审批", Role: "ROLE_FINANCE", AmountLimit: "50000"},
		}
	}
	return []ApprovalLevel{
		{Level: "部门经理审批", Role: "ROLE_MANAGER"},
		{Level: "财务审批", Role: "ROLE_FINANCE"},
		{Level: "总经理审批", Role: "ROLE_DIRECTOR"},
	}
}

// ApprovalService builds approval chains and resolves individual decisions,
// driving the order forward on full approval and back on any rejection.
type ApprovalService struct {
	uowFactory  ports.UnitOfWorkFactory
	transitions ports.ApprovalTransitionChecker
	orders      OrderTransitioner
	logger      *slog.Logger
	now         func() time.Time
}

// NewApprovalService wires an ApprovalService from its collaborators.
func NewApprovalService(
	uowFactory ports.UnitOfWorkFactory,
	transitions ports.ApprovalTransitionChecker,
	orders OrderTransitioner,
	logger *slog.Logger,
) *ApprovalService {
	return &ApprovalService{
		uowFactory:  uowFactory,
		transitions: transitions,
		orders:      orders,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateApprovalFlow creates one pending approval record per level, sequenced
// in input order, and persists the whole chain all-or-nothing. A nil levels
// slice derives the chain from the order's total amount. Returns the records
// in creation order.
func (s *ApprovalService) CreateApprovalFlow(
	ctx context.Context,
	orderID kernel.UUID,
	levels []ApprovalLevel,
) ([]*approval.Approval, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if levels == nil {
		levels = ApprovalLevelsForAmount(aggregate.TotalAmount())
	}

	records := make([]*approval.Approval, 0, len(levels))
	for i, level := range levels {
		label := level.Level
		if label == "" {
			label = "一级审批"
		}

		record, err := approval.NewApproval(kernel.NewUUID(), orderID, label, i+1)
		if err != nil {
			return nil, err
		}
		record.SetApproverRole(level.Role)
		record.SetAmountLimit(level.AmountLimit)
		record.SetRequireCountersign(level.RequireCountersign)
		records = append(records, record)
	}

	if err = uow.ApprovalRepository().AddBatch(ctx, records); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

// ProcessApproval resolves one approval record. Returns false without
// mutation when the record is no longer pending, including when a racing
// resolver won the guarded write. Returns true once the decision itself is
// committed; the order-level cascade that follows is best-effort and its
// failures are logged, not surfaced.
func (s *ApprovalService) ProcessApproval(
	ctx context.Context,
	approvalID kernel.UUID,
	approverID string,
	approved bool,
	comment string,
) (bool, error) {
	record, ok, err := s.resolve(ctx, approvalID, approverID, approved, comment)
	if err != nil || !ok {
		return false, err
	}

	if approved {
		s.cascadeApproved(ctx, record)
	} else {
		s.cascadeRejected(ctx, record)
	}
	return true, nil
}

// resolve stamps and commits the decision under the repository's
// pending-only write guard.
func (s *ApprovalService) resolve(
	ctx context.Context,
	approvalID kernel.UUID,
	approverID string,
	approved bool,
	comment string,
) (*approval.Approval, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ApprovalRepository()
	record, err := repo.Get(ctx, approvalID)
	if err != nil {
		return nil, false, err
	}

	transition := approval.Approve
	if !approved {
		transition = approval.Reject
	}
	if !s.transitions.Can(record, transition) {
		return nil, false, nil
	}
	if !record.Resolve(approverID, approved, comment, s.now()) {
		return nil, false, nil
	}

	if err = repo.Update(ctx, record); err != nil {
		if errors.Is(err, ports.ErrApprovalAlreadyResolved) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return record, true, nil
}

// cascadeApproved approves the order once no sibling remains pending.
func (s *ApprovalService) cascadeApproved(ctx context.Context, record *approval.Approval) {
	siblings, err := s.GetApprovalHistory(ctx, record.OrderID())
	if err != nil {
		s.logger.WarnContext(ctx, "approval cascade: listing siblings failed",
			"order_id", record.OrderID().String(), "error", err)
		return
	}

	for _, sibling := range siblings {
		if sibling.Status() == approval.Pending {
			return
		}
	}

	ok, err := s.orders.ApproveOrder(ctx, record.OrderID(), record.ApproverID(), "all approvals passed")
	if err != nil || !ok {
		s.logger.WarnContext(ctx, "approval cascade: order approve refused",
			"order_id", record.OrderID().String(), "applied", ok, "error", err)
	}
}

// cascadeRejected rejects the order and force-cancels every sibling still
// pending.
func (s *ApprovalService) cascadeRejected(ctx context.Context, record *approval.Approval) {
	comment := record.Comment()
	if comment == "" {
		comment = "none"
	}
	reason := fmt.Sprintf("%s rejected: %s", record.Level(), comment)

	ok, err := s.orders.RejectOrder(ctx, record.OrderID(), reason)
	if err != nil || !ok {
		s.logger.WarnContext(ctx, "approval cascade: order reject refused",
			"order_id", record.OrderID().String(), "applied", ok, "error", err)
	}

	if err := s.cancelPending(ctx, record.OrderID()); err != nil {
		s.logger.WarnContext(ctx, "approval cascade: cancelling pending siblings failed",
			"order_id", record.OrderID().String(), "error", err)
	}
}

func (s *ApprovalService) cancelPending(ctx context.Context, orderID kernel.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ApprovalRepository()
	siblings, err := repo.FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if !sibling.ForceCancel() {
			continue
		}
		if err = repo.Update(ctx, sibling); err != nil {
			// A racing resolver got there first; the record is no
			// longer pending and needs no cancellation.
			if errors.Is(err, ports.ErrApprovalAlreadyResolved) {
				continue
			}
			return err
		}
	}

	return uow.Commit(ctx)
}

// GetPendingApprovals lists pending records oldest first, optionally
// narrowed to one approver.
func (s *ApprovalService) GetPendingApprovals(ctx context.Context, approverID string) ([]*approval.Approval, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ApprovalRepository().FindPendingApprovals(ctx, approverID)
}

// GetApprovalHistory lists an order's records by sequence then creation time.
func (s *ApprovalService) GetApprovalHistory(ctx context.Context, orderID kernel.UUID) ([]*approval.Approval, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ApprovalRepository().FindByOrder(ctx, orderID)
}
