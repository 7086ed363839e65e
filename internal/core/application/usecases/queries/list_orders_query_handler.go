package queries

import (
	"context"
	"time"

	"scantrack/internal/core/domain/services"
)

var listFilters = []services.ListFilter{
	services.ListAll,
	services.ListToBePrepared,
	services.ListPending,
	services.ListOngoing,
	services.ListCompleted,
}

// ListOrdersQueryHandler renders the board from the snapshot, ranked by
// status and recency.
type ListOrdersQueryHandler struct {
	snapshots SnapshotSource
	sorter    services.OrderSorter
	now       func() time.Time
}

func NewListOrdersQueryHandler(snapshots SnapshotSource, now func() time.Time) ListOrdersQueryHandler {
	if now == nil {
		now = time.Now
	}
	return ListOrdersQueryHandler{snapshots: snapshots, sorter: services.NewOrderSorter(), now: now}
}

func (h ListOrdersQueryHandler) Handle(_ context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	snap := h.snapshots.Current()
	now := h.now()

	resp := ListOrdersResponse{
		Counts:  make(map[services.ListFilter]int, len(listFilters)),
		Version: snap.Version,
	}
	for _, f := range listFilters {
		resp.Counts[f] = len(f.Apply(snap.Orders))
	}
	for _, o := range snap.Orders {
		if o.IsOverdue(now) {
			resp.Overdue++
		}
	}

	sorted := h.sorter.Sort(query.Filter().Apply(snap.Orders))
	resp.Orders = make([]OrderView, 0, len(sorted))
	for _, o := range sorted {
		resp.Orders = append(resp.Orders, NewOrderView(o, now))
	}

	return resp, nil
}
