package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/config"
	"github.com/fcm-construction/opsdesk-api/internal/database"
	"github.com/fcm-construction/opsdesk-api/internal/http/handler"
	"github.com/fcm-construction/opsdesk-api/internal/http/middleware"
	"github.com/fcm-construction/opsdesk-api/internal/ledger"
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	ledgerClient        *ledger.Client
	rateLimiter         *middleware.RateLimiter
	quotationHandler    *handler.QuotationHandler
	billingHandler      *handler.BillingHandler
	projectHandler      *handler.ProjectHandler
	reminderHandler     *handler.ReminderHandler
	quoteRequestHandler *handler.QuoteRequestHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	ledgerClient *ledger.Client,
	rateLimiter *middleware.RateLimiter,
	quotationHandler *handler.QuotationHandler,
	billingHandler *handler.BillingHandler,
	projectHandler *handler.ProjectHandler,
	reminderHandler *handler.ReminderHandler,
	quoteRequestHandler *handler.QuoteRequestHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		ledgerClient:        ledgerClient,
		rateLimiter:         rateLimiter,
		quotationHandler:    quotationHandler,
		billingHandler:      billingHandler,
		projectHandler:      projectHandler,
		reminderHandler:     reminderHandler,
		quoteRequestHandler: quoteRequestHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check (database plus the optional ledger link)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The ledger is optional; a broken link degrades the payment sync
		// but never fails readiness.
		ledgerStatus := rt.ledgerClient.HealthCheck(r.Context())
		checks["ledger"] = ledgerStatus

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Quotations
		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", rt.quotationHandler.List)
			r.Post("/", rt.quotationHandler.Create)
			r.Get("/search", rt.quotationHandler.Search)
			r.Get("/next-number", rt.quotationHandler.NextNumber)
			r.Get("/{id}", rt.quotationHandler.Get)
			r.Put("/{id}", rt.quotationHandler.Update)
			r.Delete("/{id}", rt.quotationHandler.Delete)
			r.Get("/{id}/document", rt.quotationHandler.Document)
			r.Post("/{id}/billing", rt.quotationHandler.CreateBilling)
		})

		// Billing
		r.Route("/billing", func(r chi.Router) {
			r.Get("/", rt.billingHandler.List)
			r.Post("/", rt.billingHandler.Create)
			r.Get("/summary", rt.billingHandler.Summary)
			r.Get("/next-number", rt.billingHandler.NextNumber)
			r.Get("/check-number", rt.billingHandler.CheckNumber)
			r.Get("/{id}", rt.billingHandler.Get)
			r.Put("/{id}", rt.billingHandler.Update)
			r.Delete("/{id}", rt.billingHandler.Delete)
		})

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.projectHandler.List)
			r.Post("/", rt.projectHandler.Create)
			r.Get("/{id}", rt.projectHandler.Get)
			r.Put("/{id}", rt.projectHandler.Update)
			r.Delete("/{id}", rt.projectHandler.Delete)
		})

		// Reminders
		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", rt.reminderHandler.List)
			r.Post("/", rt.reminderHandler.Create)
			r.Put("/{id}", rt.reminderHandler.Update)
			r.Delete("/{id}", rt.reminderHandler.Delete)
		})

		// Quote requests
		r.Route("/quote-requests", func(r chi.Router) {
			r.Get("/", rt.quoteRequestHandler.List)
			r.Post("/", rt.quoteRequestHandler.Create)
			r.Get("/{id}", rt.quoteRequestHandler.Get)
			r.Put("/{id}/status", rt.quoteRequestHandler.UpdateStatus)
			r.Post("/{id}/convert", rt.quoteRequestHandler.Convert)
			r.Delete("/{id}", rt.quoteRequestHandler.Delete)
		})
	})

	return r
}
