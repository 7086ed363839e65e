package jobs

import (
	"context"
	"time"

	"scantrack/internal/core/application/usecases/queries"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/pkg/metrics"

	"go.uber.org/zap"
)

// OverdueWatchJob refreshes the overdue and in-progress gauges every minute
// and logs orders that became overdue since the previous run.
type OverdueWatchJob struct {
	*cronJob
	snapshots queries.SnapshotSource
	now       func() time.Time
	seen      map[string]struct{}
}

func NewOverdueWatchJob(snapshots queries.SnapshotSource, now func() time.Time, logger *zap.Logger) *OverdueWatchJob {
	if now == nil {
		now = time.Now
	}
	return &OverdueWatchJob{
		cronJob:   newCronJob("overdue_watch_job", "0 * * * * *", logger),
		snapshots: snapshots,
		now:       now,
		seen:      make(map[string]struct{}),
	}
}

func (j *OverdueWatchJob) Start() error {
	return j.start(j.Run)
}

func (j *OverdueWatchJob) Stop() {
	j.stop()
}

// Run evaluates the current snapshot once.
func (j *OverdueWatchJob) Run(_ context.Context) {
	now := j.now()
	overdue, inProgress := 0, 0
	current := make(map[string]struct{})

	for _, o := range j.snapshots.Current().Orders {
		if o.Status() == order.InProgress {
			inProgress++
		}
		if !o.IsOverdue(now) {
			continue
		}
		overdue++
		id := o.ID().String()
		current[id] = struct{}{}
		if _, ok := j.seen[id]; !ok {
			j.logger.Warn("order overdue",
				zap.String("order", id),
				zap.Stringer("status", o.Status()),
				zap.Time("created", o.CreationTime()),
			)
		}
	}
	j.seen = current

	metrics.OverdueOrders.Set(float64(overdue))
	metrics.OrdersInProgress.Set(float64(inProgress))
}
