package postgres

import (
	"context"
	"time"

	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// PQChangeListener turns LISTEN/NOTIFY messages sent by the table triggers
// into collection change callbacks.
type PQChangeListener struct {
	dsn    string
	logger *zap.Logger
}

func NewPQChangeListener(dsn string, logger *zap.Logger) *PQChangeListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PQChangeListener{dsn: dsn, logger: logger}
}

// Listen blocks until ctx is done. After a reconnect every collection is
// reported, since notifications may have been lost meanwhile.
func (l *PQChangeListener) Listen(ctx context.Context, onChange func(ports.Collection)) error {
	listener := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				l.logger.Warn("change listener event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})
	defer func() {
		_ = listener.Close()
	}()

	if err := listener.Listen(NotifyChannel); err != nil {
		return errs.NewPersistenceError("listen "+NotifyChannel, err)
	}
	l.logger.Info("listening for changes", zap.String("channel", NotifyChannel))

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			if n == nil {
				onChange(ports.OrdersCollection)
				onChange(ports.OperatorsCollection)
				continue
			}
			onChange(ports.Collection(n.Extra))
		case <-time.After(pingInterval):
			if err := listener.Ping(); err != nil {
				l.logger.Warn("change listener ping failed", zap.Error(err))
			}
		}
	}
}
