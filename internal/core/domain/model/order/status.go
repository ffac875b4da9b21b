package order

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with named transitions to ensure orders
// follow the procurement workflow.
//
// State transitions:
//
//	Draft ──submit_for_approval──> PendingApproval ──approve──> Approved
//	  │                                │    │
//	  │                                │    └─reject──> Rejected ──submit_for_approval──> PendingApproval
//	  │                                │
//	  └───────────cancel──────────────┴──> Cancelled (terminal)
//
//	Approved ──purchase──> Purchasing ──mark_shipped──> Shipped ──mark_received──> Received ──complete──> Completed
//	Approved ──mark_shipped──> Shipped   (delivery-driven shortcut)
//
// Status values are persisted as their string form.
type Status string

const (
	// Draft is the initial status of a newly created order.
	Draft Status = "draft"

	// PendingApproval means the order is waiting on its approval chain.
	PendingApproval Status = "pending_approval"

	// Approved means every approval level resolved in favor of the order.
	Approved Status = "approved"

	// Purchasing means procurement against the order is underway.
	Purchasing Status = "purchasing"

	// Shipped means at least one delivery batch left the supplier.
	Shipped Status = "shipped"

	// Received means goods have been signed for.
	Received Status = "received"

	// Completed means all delivery batches are warehoused. Terminal.
	Completed Status = "completed"

	// Cancelled is terminal; no transition leaves it.
	Cancelled Status = "cancelled"

	// Rejected means the approval chain rejected the order.
	// The order may be amended and resubmitted.
	Rejected Status = "rejected"
)

// Transition names a validated status change on a purchase order.
type Transition string

const (
	SubmitForApproval Transition = "submit_for_approval"
	Approve           Transition = "approve"
	Reject            Transition = "reject"
	Cancel            Transition = "cancel"
	Purchase          Transition = "purchase"
	MarkShipped       Transition = "mark_shipped"
	MarkReceived      Transition = "mark_received"
	Complete          Transition = "complete"
)

// transitionTable is the hardcoded fallback used when no external transition
// checker is wired. Statuses absent from the table (Completed, Cancelled)
// permit no transitions.
func transitionTable() map[Status]map[Transition]Status {
	return map[Status]map[Transition]Status{
		Draft: {
			SubmitForApproval: PendingApproval,
			Cancel:            Cancelled,
		},
		PendingApproval: {
			Approve: Approved,
			Reject:  Rejected,
			Cancel:  Cancelled,
		},
		Approved: {
			Cancel:      Cancelled,
			Purchase:    Purchasing,
			MarkShipped: Shipped,
		},
		Purchasing: {
			MarkShipped: Shipped,
		},
		Shipped: {
			MarkReceived: Received,
		},
		Received: {
			Complete: Completed,
		},
		Rejected: {
			SubmitForApproval: PendingApproval,
			Cancel:            Cancelled,
		},
	}
}

// getValidStatusStrings returns the set of valid Status values.
func getValidStatusStrings() map[Status]struct{} {
	return map[Status]struct{}{
		Draft:           {},
		PendingApproval: {},
		Approved:        {},
		Purchasing:      {},
		Shipped:         {},
		Received:        {},
		Completed:       {},
		Cancelled:       {},
		Rejected:        {},
	}
}

// IsValid reports whether s is one of the defined order statuses.
func (s Status) IsValid() bool {
	_, ok := getValidStatusStrings()[s]
	return ok
}

// String returns the persisted string form of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether the named transition is permitted from s.
func (s Status) CanTransition(t Transition) bool {
	_, ok := transitionTable()[s][t]
	return ok
}

// ApplyTransition returns the status reached by the named transition.
// The second result is false, with the zero Status, when the transition is
// not permitted from s. Invalid transitions are a normal negative result,
// not an error.
func (s Status) ApplyTransition(t Transition) (Status, bool) {
	next, ok := transitionTable()[s][t]
	if !ok {
		return "", false
	}
	return next, true
}
