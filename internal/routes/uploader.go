package routes

import (
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupUploader registers the upload service. photosDir is served
// read-only at /photos when non-empty.
func SetupUploader(
	app *fiber.App,
	photosDir string,
	infoHandler *handlers.InfoHandler,
	healthHandler *handlers.HealthHandler,
	uploadHandler *handlers.UploadHandler,
	accountHandler *handlers.AccountHandler,
) {
	app.Get("/", infoHandler.Info)
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if photosDir != "" {
		app.Static("/photos", photosDir, fiber.Static{Browse: false})
	}

	api := app.Group("/api", perIP(120))
	api.Post("/court-cases/upload", uploadHandler.Upload)
	api.Post("/court-cases/upload-multiple", uploadHandler.UploadMultiple)
	api.Delete("/users/:uid", perIP(10), accountHandler.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.UploadErrorResponse{Error: "Route not found"})
	})
}
