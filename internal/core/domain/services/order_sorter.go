package services

import (
	"slices"
	"time"

	"scantrack/internal/core/domain/model/order"
)

// Rank is the list priority of a status; higher sorts first.
func Rank(s order.Status) int {
	switch s {
	case order.InProgress:
		return 4
	case order.ToBePrepared:
		return 3
	case order.PendingIssue:
		return 2
	case order.Completed:
		return 1
	default:
		return 0
	}
}

// OrderSorter produces the display order of the order list: by Rank, then
// the most recent relevant timestamp first (startTime for in-progress
// orders, creationTime before start, endTime once completed). Remaining
// ties keep their input order.
type OrderSorter struct{}

func NewOrderSorter() OrderSorter {
	return OrderSorter{}
}

// Sort returns a sorted copy; the input slice is not modified.
func (OrderSorter) Sort(orders []*order.Order) []*order.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b *order.Order) int {
		ra, rb := Rank(a.Status()), Rank(b.Status())
		if ra != rb {
			return rb - ra
		}
		return recencyKey(b).Compare(recencyKey(a))
	})
	return sorted
}

func recencyKey(o *order.Order) time.Time {
	switch o.Status() {
	case order.InProgress:
		return *o.StartTime()
	case order.Completed:
		return *o.EndTime()
	default:
		return o.CreationTime()
	}
}
