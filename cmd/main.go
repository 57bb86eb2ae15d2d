package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bank-records/docs"
	"bank-records/internal/api"
	"bank-records/internal/api/handler"
	"bank-records/internal/api/handler/dto"
	"bank-records/internal/batch"
	"bank-records/internal/config"
	"bank-records/internal/domain/account"
	"bank-records/internal/domain/card"
	"bank-records/internal/domain/identity"
	"bank-records/internal/domain/loan"
	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
	"bank-records/internal/event"
	"bank-records/internal/infrastructure/database/memory"
	"bank-records/internal/infrastructure/database/postgres"
	"bank-records/internal/infrastructure/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
)

// application is what one product kind contributes to the process.
type application struct {
	details api.DetailsRoutes
	auditor registry.Auditor
}

// @title Bank Records API
// @version 1.0
// @description Customer registration with account, card or loan records. Each deployment manages one product kind.

// @contact.name API Support
// @contact.email support@bank-records.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kind, err := product.ParseKind(cfg.Service.Product)
	if err != nil {
		logger.Error("Invalid product kind", "error", err)
		os.Exit(1)
	}

	var pool postgres.DBPool
	if cfg.Database.Driver == driverPostgres {
		migrateDatabase(ctx, cfg, logger)
		dbPool := initializeDatabase(ctx, cfg, logger)
		defer closeDatabase(dbPool, logger)
		pool = dbPool
	} else {
		logger.Warn("Running against the in-memory store; data is lost on restart.")
	}

	publisher, closePublisher := initializePublisher(cfg.RabbitMQ, logger)
	defer closePublisher()

	app, err := buildApplication(kind, cfg, pool, publisher, logger)
	if err != nil {
		logger.Error("Failed to initialize application components", "error", err)
		os.Exit(1)
	}

	auditJob := batch.NewConsistencyAuditJob(app.auditor, cfg.Audit.RemoveOrphans, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)

	info := handler.NewInfoHandler(cfg.Service, cfg.Contact)
	router := api.SetupRouter(ctx, app.details, info, cfg, api.DefaultMetrics(), logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...",
		"config_source", viper.ConfigFileUsed(),
		"product", cfg.Service.Product,
		"driver", cfg.Database.Driver,
	)

	return cfg, logger
}

func migrateDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	if !cfg.Database.AutoMigrate {
		logger.Info("Automatic migrations disabled.")
		return
	}
	if err := postgres.RunMigrations(ctx, cfg.Database, logger); err != nil {
		logger.Error("Failed to apply database migrations", "error", err)
		os.Exit(1)
	}
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializePublisher falls back to a no-op publisher when RabbitMQ is disabled or
// unreachable. The returned func releases the connection.
func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, func()) {
	noop := func() {}
	if !cfg.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published.")
		return event.NoopPublisher{}, noop
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NoopPublisher{}, noop
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ publisher, customer events will not be published", "error", err)
		_ = conn.Close()
		return event.NoopPublisher{}, noop
	}

	logger.Info("Publishing customer events to RabbitMQ", "exchange", cfg.ExchangeName)
	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			logger.Warn("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

func buildApplication(kind product.Kind, cfg *config.Config, pool postgres.DBPool, publisher event.EventPublisher, logger *slog.Logger) (*application, error) {
	logger.Info("Initializing application components...", "product", string(kind))
	switch kind {
	case product.KindAccount:
		return wireProduct[account.Account, *account.Account, dto.AccountDto](kind, cfg, pool, postgres.NewAccountRepository, dto.AccountMapper{}, publisher, logger)
	case product.KindCard:
		return wireProduct[card.Card, *card.Card, dto.CardDto](kind, cfg, pool, postgres.NewCardRepository, dto.CardMapper{}, publisher, logger)
	case product.KindLoan:
		return wireProduct[loan.Loan, *loan.Loan, dto.LoanDto](kind, cfg, pool, postgres.NewLoanRepository, dto.LoanMapper{}, publisher, logger)
	default:
		return nil, fmt.Errorf("unsupported product kind %q", kind)
	}
}

// wireProduct builds the store, workflows and handler of one product kind. A nil pool
// selects the in-memory store.
func wireProduct[P any, PP product.Record[P], D any](
	kind product.Kind,
	cfg *config.Config,
	pool postgres.DBPool,
	newProducts postgres.ProductRepositoryFactory[P],
	mapper dto.ProductMapper[P, D],
	publisher event.EventPublisher,
	logger *slog.Logger,
) (*application, error) {
	ids, err := identity.NewRandomGenerator(cfg.Identity.Min, cfg.Identity.Max)
	if err != nil {
		return nil, err
	}

	var (
		uow     registry.UnitOfWork[P]
		auditor registry.Auditor
	)
	if pool == nil {
		store := memory.NewStore[P, PP](kind)
		uow, auditor = store, store
	} else {
		uow = postgres.NewUnitOfWork(pool, newProducts, logger)
		pgAuditor, err := postgres.NewAuditor(pool, kind, logger)
		if err != nil {
			return nil, err
		}
		auditor = pgAuditor
	}

	service := registry.NewService[P, PP](kind, uow, ids, logger,
		registry.WithMaxIdentityAttempts(cfg.Identity.MaxAttempts),
		registry.WithPublisher(publisher),
	)
	validator := dto.NewValidator(cfg.Identity.Min, cfg.Identity.Max)

	return &application{
		details: handler.NewDetailsHandler(kind, service, mapper, validator, logger),
		auditor: auditor,
	}, nil
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Application shutdown process complete.")
}

// startBatchJobs schedules the consistency audit. The returned scheduler is always safe to
// stop, even when the audit is disabled.
func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.ConsistencyAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	if !cfg.Audit.Enabled {
		logger.Info("Consistency audit disabled.")
		return c
	}

	scheduleSpec := cfg.Audit.Schedule
	if scheduleSpec == "" {
		scheduleSpec = "0 3 * * *"
		logger.Warn("Consistency audit schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Audit.Timeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "ConsistencyAudit")
		jobLogger.Info("Cron triggered: Running consistency audit job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, runErr := auditJob.Run(ctx); runErr != nil {
			jobLogger.Error("Consistency audit job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Consistency audit job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule consistency audit job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled consistency audit job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
