package queries

import (
	"context"
	"errors"
	"time"

	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/guard"
)

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

// GetDashboardQuery asks for the statistics of a day range. A nil bound
// leaves that side open.
type GetDashboardQuery struct {
	from        *time.Time
	to          *time.Time
	defaultDays bool

	guard guard.ConstructorGuard
}

func NewGetDashboardQuery(from, to *time.Time) GetDashboardQuery {
	return GetDashboardQuery{from: from, to: to, guard: guard.NewConstructorGuard()}
}

// NewDefaultRangeDashboardQuery covers the last services.DefaultDashboardDays
// days, today included.
func NewDefaultRangeDashboardQuery() GetDashboardQuery {
	return GetDashboardQuery{defaultDays: true, guard: guard.NewConstructorGuard()}
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

type GetDashboardQueryHandler struct {
	snapshots  SnapshotSource
	aggregator services.AnalyticsAggregator
	now        func() time.Time
}

func NewGetDashboardQueryHandler(snapshots SnapshotSource, aggregator services.AnalyticsAggregator, now func() time.Time) GetDashboardQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetDashboardQueryHandler{snapshots: snapshots, aggregator: aggregator, now: now}
}

// Handle fails with a validation error when from is after to.
func (h GetDashboardQueryHandler) Handle(_ context.Context, query GetDashboardQuery) (services.Dashboard, error) {
	if err := query.Validate(); err != nil {
		return services.Dashboard{}, err
	}

	r := h.aggregator.DefaultRange(h.now())
	if !query.defaultDays {
		var err error
		if r, err = services.NewDateRange(query.from, query.to, h.aggregator.Location()); err != nil {
			return services.Dashboard{}, err
		}
	}

	snap := h.snapshots.Current()
	return h.aggregator.Dashboard(snap.Orders, snap.Operators, r), nil
}
