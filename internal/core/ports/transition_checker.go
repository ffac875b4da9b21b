package ports

import (
	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/delivery"
	"procurement/internal/core/domain/model/order"
)

// Transition checkers let an external workflow engine own the legality of
// status changes. Services consult the checker before mutating and abort
// with a plain false when it declines. When no engine is wired, the
// composition root installs table-backed defaults
// (internal/core/domain/services), so service code never branches on nil.
type (
	// OrderTransitionChecker validates and applies purchase order transitions.
	OrderTransitionChecker interface {
		// Can reports whether the named transition is permitted for the order.
		Can(o *order.PurchaseOrder, t order.Transition) bool

		// Apply performs the transition, returning false without mutation
		// when it is not permitted.
		Apply(o *order.PurchaseOrder, t order.Transition) bool
	}

	// ApprovalTransitionChecker validates approval record transitions.
	// Application of the decision itself stays on the Approval entity,
	// which stamps the decision facts alongside the status change.
	ApprovalTransitionChecker interface {
		Can(a *approval.Approval, t approval.Transition) bool
	}

	// DeliveryTransitionChecker validates delivery pipeline steps. The
	// stamp methods on the Delivery entity own the mutation, so only the
	// legality check is delegated.
	DeliveryTransitionChecker interface {
		Can(d *delivery.Delivery, t delivery.Transition) bool
	}
)
