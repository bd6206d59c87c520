package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/homebudget/internal/adapter/http/handler"
	"github.com/iho/homebudget/internal/adapter/http/middleware"
	"github.com/iho/homebudget/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	ReportHandler      *handler.ReportHandler
	SavingsHandler     *handler.SavingsHandler
	CategoryHandler    *handler.CategoryHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1, everything scoped to one household
	r.Route("/api/v1/households/{householdID}", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Derived reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/trend", cfg.ReportHandler.Trend)
			r.Get("/breakdown", cfg.ReportHandler.CategoryBreakdown)
			r.Get("/monthly", cfg.ReportHandler.Monthly)
		})

		// Savings accounts
		r.Route("/savings", func(r chi.Router) {
			r.Post("/", cfg.SavingsHandler.Create)
			r.Get("/", cfg.SavingsHandler.List)
			r.Put("/{id}", cfg.SavingsHandler.Update)
			r.Put("/{id}/value", cfg.SavingsHandler.UpdateValue)
			r.Get("/{id}/snapshots", cfg.SavingsHandler.Snapshots)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
			r.Get("/options", cfg.CategoryHandler.Options)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})
	})

	return r
}
