package approval

// Status represents the state of a single approval record.
//
// Pending is the only non-terminal status: once a record is approved,
// rejected or cancelled it never transitions again.
type Status string

const (
	// Pending means the record awaits its approver's decision.
	Pending Status = "pending"

	// Approved means the approver accepted. Terminal.
	Approved Status = "approved"

	// Rejected means the approver declined. Terminal.
	Rejected Status = "rejected"

	// Cancelled means a sibling rejection voided this record. Terminal.
	Cancelled Status = "cancelled"
)

// Transition names a status change on an approval record.
type Transition string

const (
	Approve Transition = "approve"
	Reject  Transition = "reject"
	Cancel  Transition = "cancel"
)

// CanTransition reports whether the named transition is permitted from s.
// Every transition requires a Pending record.
func (s Status) CanTransition(Transition) bool {
	return s == Pending
}

// IsValid reports whether s is one of the defined approval statuses.
func (s Status) IsValid() bool {
	switch s {
	case Pending, Approved, Rejected, Cancelled:
		return true
	}
	return false
}

// String returns the persisted string form of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the record can never transition again.
func (s Status) IsTerminal() bool {
	return s != Pending
}

// Resolve returns the status reached by the approver's decision.
// Only a Pending record resolves; the second result is false otherwise.
func (s Status) Resolve(approved bool) (Status, bool) {
	if s != Pending {
		return "", false
	}
	if approved {
		return Approved, true
	}
	return Rejected, true
}

// Cancel returns the Cancelled status. Only a Pending record can be
// cancelled; the second result is false otherwise.
func (s Status) Cancel() (Status, bool) {
	if s != Pending {
		return "", false
	}
	return Cancelled, true
}
