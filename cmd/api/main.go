package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/config"
	"github.com/fcm-construction/opsdesk-api/internal/database"
	"github.com/fcm-construction/opsdesk-api/internal/document"
	"github.com/fcm-construction/opsdesk-api/internal/http/handler"
	"github.com/fcm-construction/opsdesk-api/internal/http/middleware"
	"github.com/fcm-construction/opsdesk-api/internal/http/router"
	"github.com/fcm-construction/opsdesk-api/internal/jobs"
	"github.com/fcm-construction/opsdesk-api/internal/ledger"
	"github.com/fcm-construction/opsdesk-api/internal/logger"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
	"github.com/fcm-construction/opsdesk-api/internal/service"
	"github.com/fcm-construction/opsdesk-api/internal/storage"
)

// @title FCM OpsDesk API
// @version 1.0
// @description Quotation, billing and document generation API for FCM Construction Services

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to the primary database, degrading to the local cache when
	// the primary is unreachable
	db, err := database.NewDatabase(&cfg.Database, &cfg.Cache, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage (document archive and static assets)
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize the accounting ledger connection (optional, read-only).
	// The app continues without it; only the payment sync is lost.
	var ledgerClient *ledger.Client
	if cfg.Ledger.Enabled {
		ledgerClient, err = ledger.NewClient(&cfg.Ledger, log)
		if err != nil {
			log.Warn("Ledger connection failed, continuing without it", zap.Error(err))
			ledgerClient = nil
		} else if ledgerClient != nil {
			log.Info("Ledger connected successfully",
				zap.Int("max_open_conns", cfg.Ledger.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Ledger.QueryTimeout),
			)
		}
	} else {
		log.Info("Ledger not configured, skipping")
	}

	// Document generator pulls the logo and signature images from storage
	generator := document.NewGenerator(fileStorage, document.Config{
		LogoPath:      cfg.Assets.LogoPath,
		SignaturePath: cfg.Assets.SignaturePath,
	}, log)

	// Initialize repositories
	quotationRepo := repository.NewQuotationRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	quoteRequestRepo := repository.NewQuoteRequestRepository(db)

	// Initialize services
	billingService := service.NewBillingService(billingRepo, log)
	quotationService := service.NewQuotationService(quotationRepo, billingRepo, generator, fileStorage, log)
	projectService := service.NewProjectService(projectRepo, log)
	reminderService := service.NewReminderService(reminderRepo, log)
	quoteRequestService := service.NewQuoteRequestService(quoteRequestRepo, quotationService, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	quotationHandler := handler.NewQuotationHandler(quotationService, log)
	billingHandler := handler.NewBillingHandler(billingService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	reminderHandler := handler.NewReminderHandler(reminderService, log)
	quoteRequestHandler := handler.NewQuoteRequestHandler(quoteRequestService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		ledgerClient,
		rateLimiter,
		quotationHandler,
		billingHandler,
		projectHandler,
		reminderHandler,
		quoteRequestHandler,
	)

	// Start background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		reminderJob := jobs.NewReminderScanJob(reminderService, log)
		if err := scheduler.AddJob("reminder-scan", cfg.Jobs.ReminderScanSchedule, reminderJob.Run); err != nil {
			log.Error("Failed to register reminder scan job", zap.Error(err))
		}

		if ledgerClient != nil {
			syncJob := jobs.NewLedgerSyncJob(ledgerClient, billingRepo, log)
			if err := scheduler.AddJob("ledger-sync", cfg.Jobs.LedgerSyncSchedule, syncJob.Run); err != nil {
				log.Error("Failed to register ledger sync job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("reminder_scan", cfg.Jobs.ReminderScanSchedule),
			zap.String("ledger_sync", cfg.Jobs.LedgerSyncSchedule),
			zap.Bool("ledger_sync_enabled", ledgerClient != nil),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if ledgerClient != nil {
			if err := ledgerClient.Close(); err != nil {
				log.Warn("Error closing ledger connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
