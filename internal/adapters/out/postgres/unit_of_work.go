// Package postgres implements the storage ports with GORM: a unit of work
// spanning the order and operator repositories, database opening and
// migration, and a LISTEN/NOTIFY change listener.
//
// Open also accepts sqlite for single-node setups; everything except the
// change listener works the same on both.
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, refresh, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Upsert(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"slices"
	"time"

	"scantrack/internal/adapters/out/postgres/operatorrepo"
	"scantrack/internal/adapters/out/postgres/orderrepo"
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate is one change made during the unit of work. Aggregate
// is nil for deletions.
type trackedAggregate struct {
	Collection ports.Collection
	ID         string
	Aggregate  any
}

// CommitHook runs after a successful commit with the collections that
// changed.
type CommitHook func(ctx context.Context, changed []ports.Collection)

// GormUnitOfWorkFactory creates one GormUnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	onCommit  CommitHook
	now       func() time.Time
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory accepts nil publisher, hook and logger.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, onCommit CommitHook, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		onCommit:  onCommit,
		now:       time.Now,
		logger:    logger,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		factory:           f,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction. Aggregates written
// through its repositories are tracked; after Commit they are published
// as ports.ChangeEvent and the commit hook is told which collections
// changed. Rollback drops them.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	factory           *GormUnitOfWorkFactory
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.afterCommit(ctx)
	return nil
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// after Commit, which handlers ignore in their deferred call.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OperatorRepository() ports.OperatorRepository {
	return operatorrepo.NewGormOperatorRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(collection ports.Collection, id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Collection: collection,
		ID:         id,
		Aggregate:  aggregate,
	})
}

// TrackDeletion is called by repositories after a successful delete.
func (uow *GormUnitOfWork) TrackDeletion(collection ports.Collection, id string) {
	uow.TrackAggregate(collection, id, nil)
}

func (uow *GormUnitOfWork) afterCommit(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if len(tracked) == 0 {
		return
	}

	f := uow.factory
	if f.publisher != nil {
		if err := f.publisher.Publish(ctx, uow.events(tracked)...); err != nil {
			f.logger.Warn("publish change events", zap.Int("events", len(tracked)), zap.Error(err))
		}
	}

	if f.onCommit != nil {
		f.onCommit(ctx, changedCollections(tracked))
	}
}

func (uow *GormUnitOfWork) events(tracked []trackedAggregate) []ports.ChangeEvent {
	now := uow.factory.now()
	events := make([]ports.ChangeEvent, 0, len(tracked))
	for _, t := range tracked {
		ev := ports.ChangeEvent{
			ID:         kernel.NewUUID().String(),
			Collection: t.Collection,
			Kind:       ports.ChangeUpserted,
			EntityID:   t.ID,
			OccurredAt: now,
		}
		switch a := t.Aggregate.(type) {
		case nil:
			ev.Kind = ports.ChangeDeleted
		case *order.Order:
			ev.Status = a.Status().String()
		}
		events = append(events, ev)
	}
	return events
}

func changedCollections(tracked []trackedAggregate) []ports.Collection {
	out := make([]ports.Collection, 0, 2)
	for _, t := range tracked {
		if !slices.Contains(out, t.Collection) {
			out = append(out, t.Collection)
		}
	}
	return out
}
