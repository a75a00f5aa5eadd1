package main

import (
	"context"
	"errors"
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
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/logging"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/photos"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/routes"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	store, photosDir, err := openPhotoStore(cfg)
	if err != nil {
		slog.Error("photo storage unavailable", "storage", cfg.PhotoStorage, "error", err)
		os.Exit(1)
	}

	// The auth provider is optional: without it uploads still work and
	// account deletion answers 500.
	var accounts handlers.AccountRemover
	var db *gorm.DB
	var pgLogHandler *logging.PGHandler
	if conn, err := database.Connect(cfg); err != nil {
		slog.Warn("auth provider not configured; account deletion disabled", "error", err)
	} else if err := database.Migrate(conn); err != nil {
		slog.Warn("auth provider migration failed; account deletion disabled", "error", err)
		database.Close(conn)
	} else {
		db = conn
		accounts = identity.NewProvider(db, cfg.JWTSecret, cfg.JWTAccessExpiry)
		pgLogHandler = logging.AttachDB(db, "uploader")
	}

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

	app := fiber.New(fiber.Config{
		// Room for a full multi upload plus multipart overhead
		BodyLimit:    photos.MaxFiles*photos.MaxFileSize + 5*1024*1024,
		ErrorHandler: uploaderErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))

	routes.SetupUploader(app, photosDir,
		handlers.NewInfoHandler(cfg.AppEnv, cfg.UploaderPort),
		handlers.NewHealthHandler(db),
		handlers.NewUploadHandler(store),
		handlers.NewAccountHandler(accounts),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("uploader starting",
			"port", cfg.UploaderPort,
			"storage", cfg.PhotoStorage,
			"photos_url", cfg.BaseURL+"/photos/",
		)
		if err := app.Listen(":" + cfg.UploaderPort); err != nil {
			slog.Error("uploader failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down uploader...")

	if err := app.Shutdown(); err != nil {
		slog.Error("uploader shutdown error", "error", err)
	}
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)
	if db != nil {
		database.Close(db)
	}
	slog.Info("uploader stopped")
}

// openPhotoStore returns the configured store and, for local storage, the
// directory to serve at /photos.
func openPhotoStore(cfg *config.Config) (photos.Store, string, error) {
	switch cfg.PhotoStorage {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, "", errors.New("S3_BUCKET is required for PHOTO_STORAGE=s3")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := photos.NewS3Client(ctx, cfg.AWSRegion, cfg.AWSEndpointURL)
		if err != nil {
			return nil, "", err
		}
		return photos.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBaseURL, cfg.AWSRegion), "", nil
	default:
		store, err := photos.NewLocalStore(cfg.PhotosDir, cfg.BaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

// uploaderErrorHandler answers in the upload service's {success, error}
// shape and never leaks server-side details.
func uploaderErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong!"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		switch {
		case code == fiber.StatusRequestEntityTooLarge:
			code = fiber.StatusBadRequest
			message = "File too large. Maximum size is 5MB."
		case code == fiber.StatusNotFound:
			message = "Route not found"
		case code < 500:
			message = e.Message
		}
	}

	if code >= 500 {
		slog.Error("unhandled uploader error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err.Error(),
		)
	}

	return c.Status(code).JSON(dto.UploadErrorResponse{Success: false, Error: message})
}
