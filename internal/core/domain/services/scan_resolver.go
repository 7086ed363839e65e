package services

import (
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
)

// Decision is the single next action triggered by scanning an order id.
type Decision int

const (
	DecisionUnknown Decision = iota

	// NewOrderDetected asks the user to park the order (to be prepared or
	// pending) or to assign an operator and start it.
	NewOrderDetected

	// AwaitingAssignment asks the user to pick the operator who starts the order.
	AwaitingAssignment

	// AutoComplete completes the order straight away, without a prompt.
	AutoComplete

	// AlreadyCompleted leaves the order untouched and only notifies the user.
	AlreadyCompleted
)

func (d Decision) String() string {
	switch d {
	case NewOrderDetected:
		return "new_order_detected"
	case AwaitingAssignment:
		return "awaiting_assignment"
	case AutoComplete:
		return "auto_complete"
	case AlreadyCompleted:
		return "already_completed"
	default:
		return "unknown"
	}
}

// NeedsUserInput reports whether the decision waits for a follow-up action.
func (d Decision) NeedsUserInput() bool {
	return d == NewOrderDetected || d == AwaitingAssignment
}

// Resolution carries the decision and the matching order, nil for new ids.
type Resolution struct {
	Decision Decision
	Order    *order.Order
}

// ScanResolver applies the scan decision table:
//
//  1. unknown id             -> NewOrderDetected
//  2. not started            -> AwaitingAssignment (whatever the hold)
//  3. started, not completed -> AutoComplete
//  4. completed              -> AlreadyCompleted
type ScanResolver struct{}

func NewScanResolver() ScanResolver {
	return ScanResolver{}
}

func (ScanResolver) Resolve(id kernel.OrderID, orders []*order.Order) Resolution {
	existing := FindOrder(id, orders)
	if existing == nil {
		return Resolution{Decision: NewOrderDetected}
	}

	switch existing.Status() {
	case order.Completed:
		return Resolution{Decision: AlreadyCompleted, Order: existing}
	case order.InProgress:
		return Resolution{Decision: AutoComplete, Order: existing}
	default:
		return Resolution{Decision: AwaitingAssignment, Order: existing}
	}
}

// FindOrder returns the order with the given id, or nil.
func FindOrder(id kernel.OrderID, orders []*order.Order) *order.Order {
	for _, o := range orders {
		if o != nil && o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}
