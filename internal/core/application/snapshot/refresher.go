package snapshot

import (
	"context"
	"fmt"
	"time"

	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Refresher reloads collections from storage into a Store.
type Refresher struct {
	store      *Store
	uowFactory ports.UnitOfWorkFactory
	now        func() time.Time
	logger     *zap.Logger
}

func NewRefresher(store *Store, uowFactory ports.UnitOfWorkFactory, now func() time.Time, logger *zap.Logger) (*Refresher, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{store: store, uowFactory: uowFactory, now: now, logger: logger}, nil
}

// LoadAll performs the initial full load. A failure here is fatal to the
// caller: without it no data can be shown.
func (r *Refresher) LoadAll(ctx context.Context) error {
	uow := r.uowFactory.Create()

	orders, err := uow.OrderRepository().ListAll(ctx)
	if err != nil {
		return errs.NewPersistenceError("load orders", err)
	}
	operators, err := uow.OperatorRepository().ListAll(ctx)
	if err != nil {
		return errs.NewPersistenceError("load operators", err)
	}

	r.store.Replace(orders, operators, r.now())
	r.logger.Info("snapshot loaded", zap.Int("orders", len(orders)), zap.Int("operators", len(operators)))
	return nil
}

// Refresh reloads one collection, replacing it entirely.
func (r *Refresher) Refresh(ctx context.Context, collection ports.Collection) error {
	uow := r.uowFactory.Create()

	switch collection {
	case ports.OrdersCollection:
		orders, err := uow.OrderRepository().ListAll(ctx)
		if err != nil {
			return errs.NewPersistenceError("reload orders", err)
		}
		r.store.ReplaceOrders(orders, r.now())
	case ports.OperatorsCollection:
		operators, err := uow.OperatorRepository().ListAll(ctx)
		if err != nil {
			return errs.NewPersistenceError("reload operators", err)
		}
		r.store.ReplaceOperators(operators, r.now())
	default:
		return errs.NewValueIsInvalidErrorWithCause("collection", fmt.Errorf("%q is not a known collection", collection))
	}

	metrics.SnapshotRefreshesTotal.WithLabelValues(string(collection)).Inc()
	return nil
}

// OnChange adapts Refresh to the ChangeListener callback. Reload errors
// are logged; the previous snapshot stays in place.
func (r *Refresher) OnChange(ctx context.Context) func(ports.Collection) {
	return func(c ports.Collection) {
		if err := r.Refresh(ctx, c); err != nil {
			r.logger.Error("snapshot refresh failed", zap.String("collection", string(c)), zap.Error(err))
		}
	}
}

// Run blocks on listener, refreshing the store on every notification.
func (r *Refresher) Run(ctx context.Context, listener ports.ChangeListener) error {
	if err := listener.Listen(ctx, r.OnChange(ctx)); err != nil && ctx.Err() == nil {
		return errs.NewPersistenceError("listen for changes", err)
	}
	return nil
}
