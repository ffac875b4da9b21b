package services

import (
	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/order"
)

// Default transition checkers backed by the hardcoded tables in the domain
// model. They are the null-object stand-ins installed when no external
// workflow engine is wired, so services can always consult a checker
// instead of branching on nil.

// OrderTransitions is the table-backed order transition checker.
type OrderTransitions struct{}

// NewOrderTransitions creates the default order transition checker.
func NewOrderTransitions() OrderTransitions {
	return OrderTransitions{}
}

// Can reports whether the named transition is permitted from the order's
// current status.
func (OrderTransitions) Can(o *order.PurchaseOrder, t order.Transition) bool {
	return o != nil && o.Status().CanTransition(t)
}

// Apply performs the transition through the order's own state machine.
func (OrderTransitions) Apply(o *order.PurchaseOrder, t order.Transition) bool {
	return o != nil && o.ApplyTransition(t)
}

// ApprovalTransitions is the default approval transition checker: every
// transition requires a still-pending record.
type ApprovalTransitions struct{}

// NewApprovalTransitions creates the default approval transition checker.
func NewApprovalTransitions() ApprovalTransitions {
	return ApprovalTransitions{}
}

// Can reports whether the named transition is permitted for the record.
func (ApprovalTransitions) Can(a *approval.Approval, t approval.Transition) bool {
	return a != nil && a.Status().CanTransition(t)
}

// DeliveryTransitions is the table-backed delivery pipeline checker.
type DeliveryTransitions struct{}

// NewDeliveryTransitions creates the default delivery transition checker.
func NewDeliveryTransitions() DeliveryTransitions {
	return DeliveryTransitions{}
}

// Can reports whether the named pipeline step is permitted from the batch's
// current status.
func (DeliveryTransitions) Can(d *delivery.Delivery, t delivery.Transition) bool {
	return d != nil && d.Status().CanTransition(t)
}
