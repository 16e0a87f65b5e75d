package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/Asha9112/ticket-dashboard/internal/adapters/primary/http"
	mw "github.com/Asha9112/ticket-dashboard/internal/adapters/primary/http/middleware"
	"github.com/Asha9112/ticket-dashboard/internal/adapters/secondary/helpdesk"
	"github.com/Asha9112/ticket-dashboard/internal/config"
	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/services"
	"github.com/Asha9112/ticket-dashboard/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Helpdesk Client (Secondary Adapter)
	helpdeskClient := helpdesk.NewClient(helpdesk.Config{
		BaseURL:           cfg.Helpdesk.BaseURL,
		OrgID:             cfg.Helpdesk.OrgID,
		AuthToken:         cfg.Helpdesk.AuthToken,
		RequestsPerMinute: cfg.Helpdesk.RequestsPerMinute,
		Burst:             cfg.Helpdesk.Burst,
		MaxRetries:        cfg.Helpdesk.MaxRetries,
		PageSize:          cfg.Helpdesk.PageSize,
		MetricsLimit:      cfg.Helpdesk.MetricsLimit,
		CacheTTL:          cfg.Helpdesk.CacheTTL,
		Timeout:           cfg.Helpdesk.Timeout,
	}, logger)

	// 4. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Static department table from config
	departments := make([]domain.Department, 0, len(cfg.Departments))
	for _, dept := range cfg.Departments {
		departments = append(departments, domain.Department{ID: dept.ID, Name: dept.Name})
	}

	// Services (Core)
	reconciler := services.NewReconcileService(departments)
	dashboardService := services.NewDashboardService(
		helpdeskClient, // tickets
		helpdeskClient, // metrics
		helpdeskClient, // agent directory
		reconciler,
		logger,
	)

	// Handlers (Primary Adapters)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, errorHandler, logger)
	healthHandler := httpAdapter.NewHealthHandler(helpdeskClient, cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
		MaxAge:         300,
	}))

	// Apply general rate limiting if enabled
	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
