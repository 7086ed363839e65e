package jobs

import (
	"context"

	"scantrack/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronJob runs one function on a seconds-precision cron spec. The context
// passed to the function is cancelled by stop.
type cronJob struct {
	name   string
	spec   string
	cron   *cron.Cron
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func newCronJob(name, spec string, l *zap.Logger) *cronJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &cronJob{
		name:   name,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.Component(l, name),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (j *cronJob) start(run func(ctx context.Context)) error {
	if _, err := j.cron.AddFunc(j.spec, func() { run(j.ctx) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.spec))
	return nil
}

// stop cancels the running invocation and waits for it to return.
func (j *cronJob) stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}
