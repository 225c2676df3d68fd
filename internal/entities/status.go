package entities

// OrderStatus is the lifecycle state of an order as the backend reports it.
type OrderStatus string

const (
	StatusPending            OrderStatus = "PENDING"
	StatusAccepted           OrderStatus = "ACCEPTED"
	StatusAssignedToDelivery OrderStatus = "ASSIGNED_TO_DELIVERY"
	StatusDelivered          OrderStatus = "DELIVERED"
	StatusCancelled          OrderStatus = "CANCELLED"
	StatusDelayed            OrderStatus = "DELAYED"
	StatusRejected           OrderStatus = "REJECTED"
)

// transitions holds the courier-initiated edges of the status state machine.
// PENDING -> ACCEPTED happens server-side (merchant/dispatch) and is
// deliberately absent. Terminal statuses have no outgoing edges.
var transitions = map[OrderStatus][]OrderStatus{
	StatusAccepted:           {StatusAssignedToDelivery},
	StatusAssignedToDelivery: {StatusDelivered, StatusCancelled, StatusDelayed},
	StatusDelayed:            {StatusDelivered, StatusCancelled, StatusDelayed},
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// NextStatuses returns the statuses a courier may move an order in status s
// to. The returned slice is a copy; callers may mutate it.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next, ok := transitions[s]
	if !ok {
		return nil
	}
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from s to target is a legal
// courier-initiated transition.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RequiresReason reports whether submitting target needs a non-empty reason.
// Negative or non-final outcomes must explain themselves; a delivery does not.
func (s OrderStatus) RequiresReason() bool {
	switch s {
	case StatusCancelled, StatusDelayed, StatusRejected:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}
