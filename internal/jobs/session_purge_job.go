package jobs

import (
	"context"

	"go.uber.org/zap"
)

// SessionPurger drops abandoned scan sessions.
type SessionPurger interface {
	PurgeExpired() int
}

// SessionPurgeJob frees clients whose pending decision was never answered.
type SessionPurgeJob struct {
	*cronJob
	sessions SessionPurger
}

func NewSessionPurgeJob(sessions SessionPurger, logger *zap.Logger) *SessionPurgeJob {
	return &SessionPurgeJob{
		cronJob:  newCronJob("session_purge_job", "*/30 * * * * *", logger),
		sessions: sessions,
	}
}

func (j *SessionPurgeJob) Start() error {
	return j.start(j.Run)
}

func (j *SessionPurgeJob) Stop() {
	j.stop()
}

func (j *SessionPurgeJob) Run(_ context.Context) {
	if n := j.sessions.PurgeExpired(); n > 0 {
		j.logger.Info("expired scan sessions purged", zap.Int("count", n))
	}
}
