package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/config"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func perIP(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

// Setup registers the case API.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	resolver *session.Resolver,
	healthHandler *handlers.HealthHandler,
	sessionHandler *handlers.SessionHandler,
	caseHandler *handlers.CaseHandler,
	userHandler *handlers.UserHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(perIP(120))

	api.Get("/health", healthHandler.Check)

	// Auth: stricter limit on credential checks
	auth := api.Group("/auth")
	auth.Post("/login", perIP(10), sessionHandler.Login)
	auth.Post("/user-login", perIP(10), sessionHandler.UserLogin)
	auth.Post("/logout", sessionHandler.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), sessionHandler.Me)

	editor := []fiber.Handler{middleware.JWTProtected(cfg), middleware.EditorRequired(resolver)}
	admin := []fiber.Handler{middleware.JWTProtected(cfg), middleware.AdminRequired(resolver)}

	// Cases: public reads. /trash is registered before /:id.
	cases := api.Group("/cases")
	cases.Get("/", caseHandler.List)
	cases.Get("/trash", append(admin, caseHandler.Trash)...)
	cases.Get("/:id", caseHandler.Get)
	cases.Post("/", append(editor, caseHandler.Create)...)
	cases.Put("/:id", append(editor, caseHandler.Update)...)
	cases.Delete("/:id", append(admin, caseHandler.Delete)...)
	cases.Post("/:id/restore", append(admin, caseHandler.Restore)...)
	cases.Delete("/:id/permanent", append(admin, caseHandler.Purge)...)

	// Admin panel
	adminGroup := api.Group("/admin", admin...)
	adminGroup.Post("/cases/migrate-dismissed", caseHandler.MigrateDismissed)
	adminGroup.Get("/users", userHandler.List)
	adminGroup.Post("/users", userHandler.Create)
	adminGroup.Patch("/users/:id/enabled", userHandler.ToggleEnabled)
	adminGroup.Delete("/users/:id", userHandler.Delete)
}
