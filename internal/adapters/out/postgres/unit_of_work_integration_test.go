package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "scantrack/internal/adapters/out/postgres"
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the unit of work, the schema
// triggers and the LISTEN/NOTIFY listener against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	publisher *recordingPublisher
	hook      *recordingHook
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := postgres_adapter.Open(postgres_adapter.DriverPostgres, dsn, nil)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	// Migrating twice must be harmless.
	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, operators").Error)

	suite.publisher = &recordingPublisher{}
	suite.hook = &recordingHook{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, suite.hook.record, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StartOrderAcrossRepositories() {
	ctx := context.Background()
	ana := operator.MustNewOperator("A1", "Ana")
	id := kernel.MustParseOrderID("ORD-7")
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OperatorRepository().Add(ctx, ana))
	parked, err := order.NewOrder(id, now, order.HoldToBePrepared)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Upsert(ctx, parked))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o, err := uow.OrderRepository().Get(ctx, id)
	suite.Require().NoError(err)
	op, err := uow.OperatorRepository().Get(ctx, "A1")
	suite.Require().NoError(err)
	suite.Require().NoError(o.Start(op, now.Add(time.Minute)))
	suite.Require().NoError(uow.OrderRepository().Upsert(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, restored.Status())

	events := suite.publisher.all()
	suite.Require().Len(events, 3)
	suite.Equal(ports.OperatorsCollection, events[0].Collection)
	suite.Equal(ports.ChangeUpserted, events[1].Kind)
	suite.Equal("to_be_prepared", events[1].Status)
	suite.Equal("in_progress", events[2].Status)
	suite.Equal("ORD-7", events[2].EntityID)
	suite.Equal([][]ports.Collection{
		{ports.OperatorsCollection, ports.OrdersCollection},
		{ports.OrdersCollection},
	}, suite.hook.all())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OperatorRepository().Add(ctx, operator.MustNewOperator("B2", "Bea")))
	suite.Require().NoError(uow.Rollback(ctx))

	ops, err := suite.factory.Create().OperatorRepository().ListAll(ctx)
	suite.Require().NoError(err)
	suite.Empty(ops)
	suite.Empty(suite.publisher.all())
	suite.Empty(suite.hook.all())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestChangeListener_ReportsChangedTable() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	changes := make(chan ports.Collection, 8)
	listener := postgres_adapter.NewPQChangeListener(suite.dsn, nil)
	done := make(chan error, 1)
	go func() {
		done <- listener.Listen(ctx, func(c ports.Collection) { changes <- c })
	}()

	// Give LISTEN time to register before writing.
	time.Sleep(500 * time.Millisecond)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OperatorRepository().Add(ctx, operator.MustNewOperator("C3", "Carl")))
	suite.Require().NoError(uow.Commit(ctx))

	select {
	case c := <-changes:
		suite.Equal(ports.OperatorsCollection, c)
	case <-ctx.Done():
		suite.Fail("no change notification received")
	}

	cancel()
	suite.Require().NoError(<-done)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) all() []ports.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.ChangeEvent(nil), p.events...)
}

type recordingHook struct {
	mu    sync.Mutex
	calls [][]ports.Collection
}

func (h *recordingHook) record(_ context.Context, changed []ports.Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, changed)
}

func (h *recordingHook) all() [][]ports.Collection {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]ports.Collection(nil), h.calls...)
}
