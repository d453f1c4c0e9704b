package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.AuthJWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is not set; candidate listing accepts only the admin token")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Store. Without credentials the server still serves pages, and every
	// store-touching operation fails fast with a configuration error.
	var (
		db           *gorm.DB
		store        services.CandidateStore = repository.UnconfiguredCandidateStore{}
		pgLogHandler *logging.PGHandler
		cleanupDone  = make(chan struct{})
	)
	if cfg.StoreConfigured() {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}

		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err = database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(db)
		slog.SetDefault(slog.New(logging.NewTraceHandler(logging.NewMultiHandler(
			logging.StdoutHandler(),
			pgLogHandler,
		))))

		// Log cleanup (30-day retention)
		logging.StartCleanup(db, cleanupDone)

		store = repository.NewCandidateRepository(db)
	} else {
		slog.Error("store is not configured; set STORE_URL and STORE_KEY",
			"action", "startup", "kind", "configuration")
	}

	// Services
	registrationService := services.NewRegistrationService(store, appMetrics)
	authClient := services.NewAuthClient(cfg)

	// Handlers
	h := routes.Handlers{
		Candidate:  handlers.NewCandidateHandler(registrationService, appMetrics),
		Assessment: handlers.NewAssessmentHandler(registrationService),
		Auth:       handlers.NewAuthHandler(authClient),
		Health:     handlers.NewHealthHandler(db),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    64 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok {
			c.SetUserContext(logging.WithTraceID(c.UserContext(), id))
		}
		return c.Next()
	})
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, h, registry)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store_configured", db != nil)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.ErrorContext(c.UserContext(), "unhandled server error",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
