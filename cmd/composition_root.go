package cmd

import (
	"context"
	"errors"
	"io"
	"time"

	httpadapter "scantrack/internal/adapters/in/http"
	"scantrack/internal/adapters/out/events"
	"scantrack/internal/adapters/out/postgres"
	"scantrack/internal/adapters/out/vision"
	"scantrack/internal/core/application/snapshot"
	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/application/usecases/queries"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/core/ports"
	"scantrack/internal/jobs"
	"scantrack/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type eventPublisher interface {
	ports.EventPublisher
	io.Closer
}

// CompositionRoot owns every long-lived object of the process.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  eventPublisher
	store      *snapshot.Store
	refresher  *snapshot.Refresher
	sessions   *commands.ScanSessions
	keys       *vision.KeyStore
	extractor  *vision.Extractor
	aggregator services.AnalyticsAggregator
	now        func() time.Time
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, l *zap.Logger) (*CompositionRoot, error) {
	if l == nil {
		l = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.SessionTTL()
	if err != nil {
		return nil, err
	}
	publisher, err := newPublisher(cfg, l)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		publisher:  publisher,
		store:      snapshot.NewStore(),
		aggregator: services.NewAnalyticsAggregator(loc),
		now:        time.Now,
		logger:     l,
	}

	// Local commits refresh the snapshot straight away; the change
	// listener covers writes from other processes.
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, c.refreshChanged, logger.Component(l, "unit_of_work"))

	c.refresher, err = snapshot.NewRefresher(c.store, c.uowFactory, c.now, logger.Component(l, "snapshot"))
	if err != nil {
		return nil, err
	}

	c.sessions = commands.NewScanSessions(ttl, c.now)

	model := cfg.VisionModel
	if model == "" {
		model = vision.DefaultModel
	}
	c.keys = vision.NewKeyStore(cfg.VisionAPIKey, model)
	c.extractor = vision.NewExtractor(
		c.keys,
		vision.OpenAIModelFactory(cfg.VisionBaseURL, model),
		model,
		logger.Component(l, "vision"),
	)
	return c, nil
}

func newPublisher(cfg Config, l *zap.Logger) (eventPublisher, error) {
	switch cfg.EventsBroker {
	case events.BrokerKafka:
		if len(cfg.KafkaBrokers()) == 0 {
			return nil, errors.New("KAFKA_HOST is required for the kafka broker")
		}
		writer := events.NewKafkaWriter(cfg.KafkaBrokers(), cfg.KafkaOrderChangedTopic)
		return events.NewKafkaPublisher(writer), nil
	case events.BrokerRabbitMQ:
		return events.DialRabbit(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case "", events.BrokerNone:
		return events.NewNopPublisher(logger.Component(l, "events")), nil
	default:
		return nil, errors.New("unknown EVENTS_BROKER " + cfg.EventsBroker)
	}
}

func (c *CompositionRoot) refreshChanged(ctx context.Context, changed []ports.Collection) {
	for _, collection := range changed {
		if err := c.refresher.Refresh(ctx, collection); err != nil {
			c.logger.Error("refresh after commit failed", zap.String("collection", string(collection)), zap.Error(err))
		}
	}
}

func (c *CompositionRoot) Store() *snapshot.Store {
	return c.store
}

func (c *CompositionRoot) Refresher() *snapshot.Refresher {
	return c.refresher
}

// ChangeListener returns the postgres listener, or nil for drivers
// without notifications.
func (c *CompositionRoot) ChangeListener() ports.ChangeListener {
	if c.cfg.Driver() != postgres.DriverPostgres {
		return nil
	}
	return postgres.NewPQChangeListener(c.cfg.DSN(), logger.Component(c.logger, "change_listener"))
}

func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) operatorUoWFactory() commands.OperatorUoWFactory {
	return FuncOperatorUoWFactory(func() commands.OperatorUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateScanOrderCommandHandler() commands.ScanOrderCommandHandler {
	return commands.NewScanOrderCommandHandler(c.orderUoWFactory(), c.extractor, c.store, c.sessions, c.now,
		logger.Component(c.logger, "scan_order"))
}

func (c *CompositionRoot) CreateDecideNewOrderCommandHandler() commands.DecideNewOrderCommandHandler {
	return commands.NewDecideNewOrderCommandHandler(c.uoWFactory(), c.sessions, c.now)
}

func (c *CompositionRoot) CreateAssignOperatorCommandHandler() commands.AssignOperatorCommandHandler {
	return commands.NewAssignOperatorCommandHandler(c.uoWFactory(), c.sessions, c.now)
}

func (c *CompositionRoot) CreateCancelScanCommandHandler() commands.CancelScanCommandHandler {
	return commands.NewCancelScanCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateChangeHoldCommandHandler() commands.ChangeHoldCommandHandler {
	return commands.NewChangeHoldCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.orderUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateClearHistoryCommandHandler() commands.ClearHistoryCommandHandler {
	return commands.NewClearHistoryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSaveOperatorCommandHandler() commands.SaveOperatorCommandHandler {
	return commands.NewSaveOperatorCommandHandler(c.operatorUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOperatorCommandHandler() commands.RemoveOperatorCommandHandler {
	return commands.NewRemoveOperatorCommandHandler(c.operatorUoWFactory())
}

func (c *CompositionRoot) CreateSetVisionKeyCommandHandler() commands.SetVisionKeyCommandHandler {
	return commands.NewSetVisionKeyCommandHandler(c.keys)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.store, c.now)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.store, c.aggregator, c.now)
}

func (c *CompositionRoot) CreateGetHistoryQueryHandler() queries.GetHistoryQueryHandler {
	return queries.NewGetHistoryQueryHandler(c.store, c.aggregator, c.now)
}

func (c *CompositionRoot) CreateListOperatorsQueryHandler() queries.ListOperatorsQueryHandler {
	return queries.NewListOperatorsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetVisionStatusQueryHandler() queries.GetVisionStatusQueryHandler {
	return queries.NewGetVisionStatusQueryHandler(c.keys)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		ScanOrder:       c.CreateScanOrderCommandHandler(),
		DecideNewOrder:  c.CreateDecideNewOrderCommandHandler(),
		AssignOperator:  c.CreateAssignOperatorCommandHandler(),
		CancelScan:      c.CreateCancelScanCommandHandler(),
		ChangeHold:      c.CreateChangeHoldCommandHandler(),
		FinalizeOrder:   c.CreateFinalizeOrderCommandHandler(),
		ClearHistory:    c.CreateClearHistoryCommandHandler(),
		SaveOperator:    c.CreateSaveOperatorCommandHandler(),
		RemoveOperator:  c.CreateRemoveOperatorCommandHandler(),
		SetVisionKey:    c.CreateSetVisionKeyCommandHandler(),
		ListOrders:      c.CreateListOrdersQueryHandler(),
		GetDashboard:    c.CreateGetDashboardQueryHandler(),
		GetHistory:      c.CreateGetHistoryQueryHandler(),
		ListOperators:   c.CreateListOperatorsQueryHandler(),
		GetVisionStatus: c.CreateGetVisionStatusQueryHandler(),
	}, c.now)
}

func (c *CompositionRoot) CreateFeed(server *httpadapter.Server) *httpadapter.Feed {
	return httpadapter.NewFeed(server.Board, logger.Component(c.logger, "feed"))
}

// CreateJobManager wires the background jobs. The periodic snapshot reload
// only runs when no change listener is available.
func (c *CompositionRoot) CreateJobManager(feed *httpadapter.Feed) *jobs.JobManager {
	all := []jobs.Job{
		jobs.NewOverdueWatchJob(c.store, c.now, c.logger),
		jobs.NewFeedTickJob(feed, c.logger),
		jobs.NewSessionPurgeJob(c.sessions, c.logger),
	}
	if c.cfg.Driver() != postgres.DriverPostgres {
		all = append(all, jobs.NewSnapshotRefreshJob(c.refresher, "", c.logger))
	}
	return jobs.NewJobManager(all...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOperatorUoWFactory func() commands.OperatorUoW

func (f FuncOperatorUoWFactory) Create() commands.OperatorUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
