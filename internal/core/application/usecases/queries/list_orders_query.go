package queries

import (
	"errors"
	"time"

	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery selects the orders shown on the main board.
//
// Example:
//
//	query, err := NewListOrdersQuery("ongoing")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	for _, o := range resp.Orders {
//	    fmt.Printf("%s %s %s\n", o.ID, o.Display.Label, o.Elapsed)
//	}
type ListOrdersQuery struct {
	filter services.ListFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts all, to_be_prepared, pending, ongoing and
// completed; the empty string means all.
func NewListOrdersQuery(filter string) (ListOrdersQuery, error) {
	f, err := services.ParseListFilter(filter)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{filter: f, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() services.ListFilter {
	return q.filter
}

// OrderView is one order as displayed at a given instant. Elapsed is
// "N/A" unless the order is in progress.
type OrderView struct {
	ID            string
	Status        order.Status
	Display       order.Display
	Overdue       bool
	PendingStatus string
	CreationTime  time.Time
	StartTime     *time.Time
	EndTime       *time.Time
	OperatorID    string
	OperatorName  string
	Elapsed       string
	WaitTime      string
	PrepTime      string
}

// NewOrderView renders o at now.
func NewOrderView(o *order.Order, now time.Time) OrderView {
	overdue := o.IsOverdue(now)
	view := OrderView{
		ID:            o.ID().String(),
		Status:        o.Status(),
		Display:       o.Status().Display(overdue),
		Overdue:       overdue,
		PendingStatus: o.Hold().String(),
		CreationTime:  o.CreationTime(),
		StartTime:     o.StartTime(),
		EndTime:       o.EndTime(),
		Elapsed:       o.Elapsed(now),
		WaitTime:      o.WaitTime(),
		PrepTime:      o.PrepTime(),
	}
	if op := o.Operator(); op != nil {
		view.OperatorID = op.ID()
		view.OperatorName = op.Name()
	}
	return view
}

// ListOrdersResponse holds the filtered board. Counts and Overdue cover
// the whole snapshot.
type ListOrdersResponse struct {
	Orders  []OrderView
	Counts  map[services.ListFilter]int
	Overdue int
	Version uint64
}
