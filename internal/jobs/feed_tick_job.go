package jobs

import (
	"context"

	"go.uber.org/zap"
)

// Broadcaster pushes the current board to live clients.
type Broadcaster interface {
	Broadcast(ctx context.Context) error
}

// FeedTickJob re-sends the board every second so elapsed times keep
// counting on connected screens.
type FeedTickJob struct {
	*cronJob
	feed Broadcaster
}

func NewFeedTickJob(feed Broadcaster, logger *zap.Logger) *FeedTickJob {
	return &FeedTickJob{
		cronJob: newCronJob("feed_tick_job", "* * * * * *", logger),
		feed:    feed,
	}
}

func (j *FeedTickJob) Start() error {
	return j.start(j.Run)
}

func (j *FeedTickJob) Stop() {
	j.stop()
}

func (j *FeedTickJob) Run(ctx context.Context) {
	if err := j.feed.Broadcast(ctx); err != nil && ctx.Err() == nil {
		j.logger.Error("feed tick failed", zap.Error(err))
	}
}
