package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"pasar/internal/config"
	"pasar/internal/database"
	"pasar/internal/events"
	"pasar/internal/handlers"
	"pasar/internal/repositories"
	"pasar/internal/risk"
	"pasar/internal/services"
	"pasar/pkg/kafka"
	"pasar/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("Server failed", zap.Error(err))
	}
	lg.Info("Server gracefully stopped")
}

// run wires every dependency, serves until ctx is cancelled and then
// releases resources in reverse order.
func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	db, err := database.Open(database.Config{
		Driver:   cfg.DatabaseDriver,
		DSN:      cfg.DatabaseDSN,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			lg.Warn("Failed to close database", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		return errors.Wrap(err, "migrate")
	}

	dial, err := newDialer(cfg)
	if err != nil {
		return err
	}
	publisher := events.NewPublisher(dial, lg)
	defer func() {
		if err := publisher.Close(); err != nil {
			lg.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	app := NewApp(handlers.Services{
		Checkout: services.NewCheckoutService(orderRepo, publisher, lg),
		Products: services.NewProductService(productRepo, publisher, lg),
		Orders:   services.NewOrderService(orderRepo),
		Risk:     services.NewRiskService(risk.RandomModel{}, publisher, cfg.RiskLatencyBudget, lg),
		Finance:  services.NewFinanceService(publisher, lg),
		Payments: services.NewPaymentService(publisher, lg),
	}, publisher, handlers.WebhookConfig{
		Secret: []byte(cfg.WebhookSecret),
		Header: cfg.WebhookHeader,
	}, lg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Starting server",
			zap.String("addr", cfg.AppPort),
			zap.String("database", cfg.DatabaseDriver),
			zap.String("events", cfg.EventsDriver),
		)
		if err := app.Listen(cfg.AppPort); err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("Shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}

// NewApp builds the Fiber application with middleware, the health check and
// every API route.
func NewApp(svc handlers.Services, publisher *events.Publisher, hook handlers.WebhookConfig, lg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pasar",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(lg),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"events": publisher.State(),
		})
	})

	handlers.Mount(app, svc, hook, lg)
	return app
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newDialer(cfg *config.Config) (events.Dialer, error) {
	switch cfg.EventsDriver {
	case config.EventsKafka:
		return kafka.Dialer(kafka.Config{
			Brokers:      cfg.KafkaBrokers,
			WriteTimeout: cfg.KafkaWriteTimeout,
			Compression:  cfg.KafkaCompression,
		}), nil
	case config.EventsRabbitMQ:
		return rabbitmq.Dialer(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
		}), nil
	case config.EventsMemory:
		return events.NewMemoryBroker().Dialer(), nil
	}
	return nil, errors.Errorf("unsupported events driver %q", cfg.EventsDriver)
}
