package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/homebudget/internal/adapter/http"
	"github.com/iho/homebudget/internal/adapter/http/handler"
	"github.com/iho/homebudget/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/homebudget/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/homebudget/internal/adapter/repository/redis"
	"github.com/iho/homebudget/internal/infrastructure/config"
	"github.com/iho/homebudget/internal/infrastructure/eventpublisher"
	"github.com/iho/homebudget/internal/infrastructure/logger"
	"github.com/iho/homebudget/internal/infrastructure/logging"
	"github.com/iho/homebudget/internal/infrastructure/metrics"
	"github.com/iho/homebudget/internal/infrastructure/postgres"
	"github.com/iho/homebudget/internal/infrastructure/redis"
	"github.com/iho/homebudget/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup loggers. zerolog carries the HTTP request logs, slog the
	// background workers.
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	savingsAccountRepo := postgresRepo.NewSavingsAccountRepository(pool)
	snapshotRepo := postgresRepo.NewSnapshotRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrierWithLogger(slogger.Logger)

	// Initialize use cases
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, outboxRepo, cache, idGen, m)
	reportUC := usecase.NewReportUseCase(transactionRepo, cache, m)
	savingsUC := usecase.NewSavingsUseCase(txManager, savingsAccountRepo, snapshotRepo, transactionRepo, outboxRepo, idGen, retrier, m)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen, m)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	reportHandler := handler.NewReportHandler(reportUC)
	savingsHandler := handler.NewSavingsHandler(savingsUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		ReportHandler:      reportHandler,
		SavingsHandler:     savingsHandler,
		CategoryHandler:    categoryHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:             log.Logger,
	})

	// Start outbox publisher
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slogger.Logger),
		Logger:     slogger.Logger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Keep the db connections gauge current
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				m.DBConnections.Set(float64(postgres.AcquiredConns(pool)))
			}
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
