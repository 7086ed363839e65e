package jobs

import (
	"context"

	"scantrack/internal/core/ports"

	"go.uber.org/zap"
)

// Reloader reloads one collection into the snapshot.
type Reloader interface {
	Refresh(ctx context.Context, collection ports.Collection) error
}

// SnapshotRefreshJob reloads both collections on a fixed schedule. It
// covers writes made by other processes when no change listener runs.
type SnapshotRefreshJob struct {
	*cronJob
	reloader Reloader
}

func NewSnapshotRefreshJob(reloader Reloader, spec string, logger *zap.Logger) *SnapshotRefreshJob {
	if spec == "" {
		spec = "*/15 * * * * *"
	}
	return &SnapshotRefreshJob{
		cronJob:  newCronJob("snapshot_refresh_job", spec, logger),
		reloader: reloader,
	}
}

func (j *SnapshotRefreshJob) Start() error {
	return j.start(j.Run)
}

func (j *SnapshotRefreshJob) Stop() {
	j.stop()
}

func (j *SnapshotRefreshJob) Run(ctx context.Context) {
	for _, c := range []ports.Collection{ports.OrdersCollection, ports.OperatorsCollection} {
		if err := j.reloader.Refresh(ctx, c); err != nil && ctx.Err() == nil {
			j.logger.Error("snapshot refresh failed", zap.String("collection", string(c)), zap.Error(err))
		}
	}
}
