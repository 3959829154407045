package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/apper-canvas/pennywise/internal/adapter/http"
	"github.com/apper-canvas/pennywise/internal/adapter/http/handler"
	"github.com/apper-canvas/pennywise/internal/adapter/http/middleware"
	"github.com/apper-canvas/pennywise/internal/adapter/repository/memory"
	postgresRepo "github.com/apper-canvas/pennywise/internal/adapter/repository/postgres"
	redisRepo "github.com/apper-canvas/pennywise/internal/adapter/repository/redis"
	"github.com/apper-canvas/pennywise/internal/infrastructure/config"
	"github.com/apper-canvas/pennywise/internal/infrastructure/logger"
	"github.com/apper-canvas/pennywise/internal/infrastructure/postgres"
	"github.com/apper-canvas/pennywise/internal/infrastructure/redis"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Storage
	var (
		pool            *pgxpool.Pool
		transactionRepo usecase.TransactionRepository
		budgetRepo      usecase.BudgetRepository
		goalRepo        usecase.GoalRepository
		accountRepo     usecase.AccountRepository
		auditRepo       usecase.AuditRepository
		txManager       usecase.TxManager
		retrier         usecase.Retrier
	)

	switch cfg.StorageDriver {
	case "memory":
		store := memory.NewStore()
		if cfg.SeedPath != "" {
			if err := memory.LoadSeedFile(ctx, store, cfg.SeedPath); err != nil {
				log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("failed to load seed data")
			}
			log.Info().Str("path", cfg.SeedPath).Msg("seed data loaded")
		}

		transactionRepo = store
		budgetRepo = memory.NewBudgetStore(store)
		goalRepo = memory.NewGoalStore(store)
		accountRepo = memory.NewAccountStore(store)
		auditRepo = memory.NewAuditStore(store)
		txManager = memory.NewTxManager()
		retrier = memory.NewRetrier()
		log.Info().Msg("using in-memory storage")

	case "postgres":
		pool, err = postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		transactionRepo = postgresRepo.NewTransactionRepository(pool)
		budgetRepo = postgresRepo.NewBudgetRepository(pool)
		goalRepo = postgresRepo.NewGoalRepository(pool)
		accountRepo = postgresRepo.NewAccountRepository(pool)
		auditRepo = postgresRepo.NewAuditRepository(pool)
		txManager = postgresRepo.NewTxManager(pool)
		retrier = postgresRepo.NewRetrier(appLogger)

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	// Redis is optional; without it reports are computed on every request
	// and idempotency keys are not honored.
	var (
		redisClient      *goredis.Client
		cache            usecase.Cache
		idempotencyStore middleware.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, auditRepo, cache, idGen)
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, transactionRepo, auditRepo, cache, idGen)
	goalUC := usecase.NewGoalUseCase(goalRepo, auditRepo, txManager, retrier, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, auditRepo, idGen)
	reportUC := usecase.NewReportUseCase(transactionRepo, budgetRepo, cache, cfg.ReportCacheTTL)

	// Router
	routerCfg := httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		BudgetHandler:      handler.NewBudgetHandler(budgetUC),
		GoalHandler:        handler.NewGoalHandler(goalUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		CategoryHandler:    handler.NewCategoryHandler(),
		AuditHandler:       handler.NewAuditHandler(auditRepo),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             appLogger,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	}
	if cfg.RateLimitEnabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
