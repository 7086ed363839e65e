package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scantrack/cmd"
	httpadapter "scantrack/internal/adapters/in/http"
	"scantrack/internal/adapters/out/postgres"
	"scantrack/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configs := getConfigs()
	l := logger.New(configs.LogLevel)
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, l); err != nil {
		log.Fatalf("scantrack: %v", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBDriver:               os.Getenv("DB_DRIVER"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		SQLitePath:             os.Getenv("SQLITE_PATH"),
		AppTimezone:            os.Getenv("APP_TIMEZONE"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		VisionAPIKey:           os.Getenv("VISION_API_KEY"),
		VisionBaseURL:          os.Getenv("VISION_BASE_URL"),
		VisionModel:            os.Getenv("VISION_MODEL"),
		EventsBroker:           os.Getenv("EVENTS_BROKER"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		RabbitMQURL:            os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:       os.Getenv("RABBITMQ_EXCHANGE"),
		ScanSessionTTL:         os.Getenv("SCAN_SESSION_TTL"),
		OperatorsSeedFile:      os.Getenv("OPERATORS_SEED_FILE"),
	}
}

func run(ctx context.Context, configs cmd.Config, l *zap.Logger) error {
	db, err := postgres.Open(configs.Driver(), configs.DSN(), logger.Component(l, "gorm"))
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, db, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			l.Warn("close event publisher", zap.Error(err))
		}
	}()

	if configs.OperatorsSeedFile != "" {
		seeds, err := cmd.LoadOperatorSeed(configs.OperatorsSeedFile)
		if err != nil {
			return err
		}
		added, err := cmd.SeedOperators(ctx, app.CreateSaveOperatorCommandHandler(), seeds, l)
		if err != nil {
			return err
		}
		l.Info("operators seeded", zap.Int("added", added), zap.Int("listed", len(seeds)))
	}

	// Without a first snapshot nothing can be shown.
	if err := app.Refresher().LoadAll(ctx); err != nil {
		return err
	}

	server := app.CreateServer()
	feed := app.CreateFeed(server)
	defer feed.Close()

	e, err := httpadapter.NewRouter(server, feed, logger.Component(l, "http"))
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager(feed)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	if listener := app.ChangeListener(); listener != nil {
		g.Go(func() error {
			return app.Refresher().Run(ctx, listener)
		})
	}

	updates, unsubscribe := app.Store().Subscribe()
	defer unsubscribe()
	g.Go(func() error {
		feed.Run(ctx, updates)
		return nil
	})

	g.Go(func() error {
		l.Info("http server listening", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
