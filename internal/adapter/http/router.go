package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/apper-canvas/pennywise/internal/adapter/http/handler"
	"github.com/apper-canvas/pennywise/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	BudgetHandler      *handler.BudgetHandler
	GoalHandler        *handler.GoalHandler
	AccountHandler     *handler.AccountHandler
	ReportHandler      *handler.ReportHandler
	CategoryHandler    *handler.CategoryHandler
	AuditHandler       *handler.AuditHandler
	HealthHandler      *handler.HealthHandler

	Logger           zerolog.Logger
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/overview", cfg.BudgetHandler.Overview)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Put("/{id}", cfg.BudgetHandler.Update)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
		})

		// Savings goals
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", cfg.GoalHandler.Create)
			r.Get("/", cfg.GoalHandler.List)
			r.Get("/stats", cfg.GoalHandler.Stats)
			r.Get("/{id}", cfg.GoalHandler.Get)
			r.Put("/{id}", cfg.GoalHandler.Update)
			r.Delete("/{id}", cfg.GoalHandler.Delete)
			r.Post("/{id}/progress", cfg.GoalHandler.Progress)
		})

		// Bank accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/stats", cfg.AccountHandler.Stats)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/monthly", cfg.ReportHandler.Monthly)
			r.Get("/categories", cfg.ReportHandler.Categories)
			r.Get("/trends", cfg.ReportHandler.Trends)
		})

		r.Get("/categories", cfg.CategoryHandler.List)
		r.Get("/audit-logs", cfg.AuditHandler.List)
	})

	return r
}
