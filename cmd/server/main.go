package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/config"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/logging"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/routes"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ logs also go to system_logs
	pgLogHandler := logging.AttachDB(db, "server")

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Services
	provider := identity.NewProvider(db, cfg.JWTSecret, cfg.JWTAccessExpiry)
	uploadClient := services.NewUploadClient(cfg.UploaderURL, cfg.UploadTimeout)
	caseService := services.NewCaseService(services.NewGormCaseStore(db), uploadClient)
	directory := services.NewDirectoryService(db, provider, uploadClient)
	resolver := session.NewResolver(cfg.AdminEmailList(), directory, cfg.SessionRecheck)

	if cfg.SeedDemoCases {
		if n, err := caseService.SeedDemoCases(); err != nil {
			slog.Error("demo seed failed", "error", err)
		} else if n > 0 {
			slog.Info("demo cases seeded", "count", n)
		}
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	sessionHandler := handlers.NewSessionHandler(provider, resolver, directory)
	caseHandler := handlers.NewCaseHandler(caseService)
	userHandler := handlers.NewUserHandler(directory)

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

	// Fiber app; case forms carry up to 11 images
	app := fiber.New(fiber.Config{
		BodyLimit:    60 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, resolver, healthHandler, sessionHandler, caseHandler, userHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "uploader", cfg.UploaderURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	database.Close(db)
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
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
