package delivery

// Status represents the receiving-pipeline state of a delivery batch.
// The pipeline is linear and single-direction; no transition branches back:
//
//	Pending ──ship──> Shipped ──in_transit──> InTransit ──arrive──> Arrived
//	        ──receive──> Received ──inspect──> Inspected ──warehouse──> Warehoused
//
// Status values are persisted as their string form.
type Status string

const (
	// Pending means the batch is registered but not yet shipped.
	Pending Status = "pending"

	// Shipped means the batch left the supplier.
	Shipped Status = "shipped"

	// InTransit means the batch is with the logistics carrier.
	InTransit Status = "in_transit"

	// Arrived means the batch reached the receiving site.
	Arrived Status = "arrived"

	// Received means the batch was signed for.
	Received Status = "received"

	// Inspected means quality inspection was recorded.
	Inspected Status = "inspected"

	// Warehoused means the goods were placed into storage. Terminal.
	Warehoused Status = "warehoused"
)

// Transition names a validated pipeline step on a delivery batch.
type Transition string

const (
	Ship           Transition = "ship"
	MarkInTransit  Transition = "in_transit"
	Arrive         Transition = "arrive"
	Receive        Transition = "receive"
	Inspect        Transition = "inspect"
	WarehouseGoods Transition = "warehouse"
)

// transitionTable is the hardcoded fallback pipeline used when no external
// transition checker is wired.
func transitionTable() map[Status]map[Transition]Status {
	return map[Status]map[Transition]Status{
		Pending:   {Ship: Shipped},
		Shipped:   {MarkInTransit: InTransit},
		InTransit: {Arrive: Arrived},
		Arrived:   {Receive: Received},
		Received:  {Inspect: Inspected},
		Inspected: {WarehouseGoods: Warehoused},
	}
}

// IsValid reports whether s is one of the defined delivery statuses.
func (s Status) IsValid() bool {
	switch s {
	case Pending, Shipped, InTransit, Arrived, Received, Inspected, Warehoused:
		return true
	}
	return false
}

// String returns the persisted string form of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether the named pipeline step is permitted from s.
func (s Status) CanTransition(t Transition) bool {
	_, ok := transitionTable()[s][t]
	return ok
}

// ApplyTransition returns the status reached by the named pipeline step.
// The second result is false when the step is not permitted from s.
func (s Status) ApplyTransition(t Transition) (Status, bool) {
	next, ok := transitionTable()[s][t]
	if !ok {
		return "", false
	}
	return next, true
}
