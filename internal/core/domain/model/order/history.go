package order

import "time"

// StatusChange is one entry in the order's status history ledger. Entries are
// immutable once appended.
type StatusChange struct {
	// Seq orders the ledger: monotonic, assigned at append time, used as the
	// tie-break between entries carrying the same timestamp.
	Seq int

	From  Status
	To    Status
	At    time.Time
	Actor string
	Note  string
}

// StatusHistory is the append-only ledger of an order's status changes. It is
// the single writer of order.status: every component requests a transition
// through the aggregate, which appends here and then assigns the status, so
// the ledger can never disagree with the current value.
//
// No entry is ever mutated, removed, or reordered.
type StatusHistory struct {
	changes []StatusChange
}

// RestoreStatusHistory rebuilds a ledger from persisted entries.
// Used only by the persistence layer.
func RestoreStatusHistory(changes []StatusChange) StatusHistory {
	return StatusHistory{changes: changes}
}

// append records a transition. Only the Order aggregate calls this, from its
// own transition method.
func (h *StatusHistory) append(from, to Status, at time.Time, actor, note string) StatusChange {
	change := StatusChange{
		Seq:   len(h.changes) + 1,
		From:  from,
		To:    to,
		At:    at,
		Actor: actor,
		Note:  note,
	}
	h.changes = append(h.changes, change)
	return change
}

// Changes returns a copy of the ledger in append order.
func (h StatusHistory) Changes() []StatusChange {
	out := make([]StatusChange, len(h.changes))
	copy(out, h.changes)
	return out
}

// Len returns the number of recorded transitions.
func (h StatusHistory) Len() int {
	return len(h.changes)
}

// Replay walks the ledger from the order's initial status and returns the
// status it ends on. For a consistent aggregate the result always equals the
// current order status.
func (h StatusHistory) Replay(initial Status) Status {
	current := initial
	for _, change := range h.changes {
		current = change.To
	}
	return current
}
