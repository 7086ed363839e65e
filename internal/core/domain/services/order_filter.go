package services

import (
	"fmt"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/errs"
)

// ListFilter selects orders for the list view.
type ListFilter string

const (
	ListAll          ListFilter = "all"
	ListToBePrepared ListFilter = "to_be_prepared"
	ListPending      ListFilter = "pending"
	ListOngoing      ListFilter = "ongoing"
	ListCompleted    ListFilter = "completed"
)

// ParseListFilter maps the query value to a filter; "" means ListAll.
func ParseListFilter(s string) (ListFilter, error) {
	switch f := ListFilter(s); f {
	case "":
		return ListAll, nil
	case ListAll, ListToBePrepared, ListPending, ListOngoing, ListCompleted:
		return f, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status filter", fmt.Errorf("%q is not a valid filter", s))
	}
}

func (f ListFilter) Matches(o *order.Order) bool {
	switch f {
	case ListToBePrepared:
		return o.Status() == order.ToBePrepared
	case ListPending:
		return o.Status() == order.PendingIssue
	case ListOngoing:
		return o.Status() == order.InProgress
	case ListCompleted:
		return o.Status() == order.Completed
	default:
		return true
	}
}

// Apply keeps the matching orders, preserving their order.
func (f ListFilter) Apply(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
