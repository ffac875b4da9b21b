package approval

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrApprovalIsNotConstructed is returned when an Approval instance was not
	// created through the NewApproval factory method.
	ErrApprovalIsNotConstructed = errors.New("Approval must be created via NewApproval constructor")
)

// Approval is one step in an order's multi-level approval chain. Records are
// created together as a batch (sequence 1..N) and resolved independently;
// a record that leaves Pending is terminal and never transitions twice.
//
// Approval stores only the owning order's ID, never an object reference.
type Approval struct {
	id      kernel.UUID
	orderID kernel.UUID

	level    string
	sequence int
	status   Status

	approverID   string
	approverName string
	approverRole string

	comment     string
	approveTime *time.Time

	// amountLimit is the maximum amount this approver may authorize, as a
	// scale-2 decimal string. Empty means unlimited authority.
	amountLimit string

	attachments        map[string]string
	requireCountersign bool
	remark             string

	isConstructed bool
}

// NewApproval creates a Pending approval step for an order. The level label
// is required and sequence must be positive.
func NewApproval(id, orderID kernel.UUID, level string, sequence int) (*Approval, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if level == "" {
		return nil, errs.NewValueIsRequiredError("level")
	}
	if sequence <= 0 {
		return nil, errs.NewValueIsInvalidError("sequence")
	}

	return &Approval{
		id:            id,
		orderID:       orderID,
		level:         level,
		sequence:      sequence,
		status:        Pending,
		attachments:   map[string]string{},
		isConstructed: true,
	}, nil
}

// Validate ensures the Approval was constructed through NewApproval or
// RestoreApproval.
func (a *Approval) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrApprovalIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (a *Approval) ID() kernel.UUID {
	return a.id
}

// OrderID returns the owning order's identifier.
func (a *Approval) OrderID() kernel.UUID {
	return a.orderID
}

// Level returns the free-text level label, e.g. "部门经理审批".
func (a *Approval) Level() string {
	return a.level
}

// Sequence returns the record's position in the chain, starting at 1.
func (a *Approval) Sequence() int {
	return a.sequence
}

// Status returns the record's current status.
func (a *Approval) Status() Status {
	return a.status
}

// ApproverID returns the deciding approver's identifier, empty while Pending.
func (a *Approval) ApproverID() string {
	return a.approverID
}

// ApproverName returns the approver's display name.
func (a *Approval) ApproverName() string {
	return a.approverName
}

// ApproverRole returns the role expected to decide this level.
func (a *Approval) ApproverRole() string {
	return a.approverRole
}

// Comment returns the approver's comment.
func (a *Approval) Comment() string {
	return a.comment
}

// ApproveTime returns when the decision was recorded, nil while Pending.
func (a *Approval) ApproveTime() *time.Time {
	return a.approveTime
}

// AmountLimit returns the maximum amount this approver may authorize.
// Empty means unlimited authority.
func (a *Approval) AmountLimit() string {
	return a.amountLimit
}

// RequireCountersign reports whether the step needs multiple co-signers.
func (a *Approval) RequireCountersign() bool {
	return a.requireCountersign
}

// Attachments returns the attachment name to reference map.
func (a *Approval) Attachments() map[string]string {
	return a.attachments
}

// Remark returns the free-text remark.
func (a *Approval) Remark() string {
	return a.remark
}

// SetApproverRole sets the role expected to decide this level.
func (a *Approval) SetApproverRole(role string) {
	a.approverRole = role
}

// SetApproverName sets the approver's display name.
func (a *Approval) SetApproverName(name string) {
	a.approverName = name
}

// SetAmountLimit sets the authorization limit as a scale-2 decimal string.
// An empty value means unlimited; panics on a non-numeric non-empty value.
func (a *Approval) SetAmountLimit(limit string) {
	if limit == "" {
		a.amountLimit = ""
		return
	}
	a.amountLimit = kernel.RoundMoney(kernel.MustAmount(limit))
}

// SetRequireCountersign flags the step as needing multiple co-signers.
func (a *Approval) SetRequireCountersign(required bool) {
	a.requireCountersign = required
}

// SetRemark sets the free-text remark.
func (a *Approval) SetRemark(remark string) {
	a.remark = remark
}

// AddAttachment records an attachment reference under the given name.
func (a *Approval) AddAttachment(name, reference string) {
	if a.attachments == nil {
		a.attachments = map[string]string{}
	}
	a.attachments[name] = reference
}

// Resolve records the approver's decision. Returns false without mutation
// when the record already left Pending, which makes double-processing a
// harmless no-op for callers.
func (a *Approval) Resolve(approverID string, approved bool, comment string, at time.Time) bool {
	next, ok := a.status.Resolve(approved)
	if !ok {
		return false
	}
	a.status = next
	a.approverID = approverID
	a.comment = comment
	a.approveTime = &at
	return true
}

// ForceCancel voids a still-pending record after a sibling rejection.
// Returns false without mutation when the record already left Pending.
func (a *Approval) ForceCancel() bool {
	next, ok := a.status.Cancel()
	if !ok {
		return false
	}
	a.status = next
	return true
}

// Snapshot carries every persisted approval attribute for reconstruction
// from storage.
type Snapshot struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	Level              string
	Sequence           int
	Status             Status
	ApproverID         string
	ApproverName       string
	ApproverRole       string
	Comment            string
	ApproveTime        *time.Time
	AmountLimit        string
	Attachments        map[string]string
	RequireCountersign bool
	Remark             string
}

// RestoreApproval reconstructs an Approval from persistence.
func RestoreApproval(s Snapshot) (*Approval, error) {
	if err := errors.Join(s.ID.Validate(), s.OrderID.Validate()); err != nil {
		return nil, err
	}
	if s.Level == "" {
		return nil, errs.NewValueIsRequiredError("level")
	}
	if s.Sequence <= 0 {
		return nil, errs.NewValueIsInvalidError("sequence")
	}
	if !s.Status.IsValid() {
		return nil, errs.NewValueIsInvalidError("status")
	}

	attachments := s.Attachments
	if attachments == nil {
		attachments = map[string]string{}
	}

	return &Approval{
		id:                 s.ID,
		orderID:            s.OrderID,
		level:              s.Level,
		sequence:           s.Sequence,
		status:             s.Status,
		approverID:         s.ApproverID,
		approverName:       s.ApproverName,
		approverRole:       s.ApproverRole,
		comment:            s.Comment,
		approveTime:        s.ApproveTime,
		amountLimit:        s.AmountLimit,
		attachments:        attachments,
		requireCountersign: s.RequireCountersign,
		remark:             s.Remark,
		isConstructed:      true,
	}, nil
}
