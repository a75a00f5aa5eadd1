package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type InfoHandler struct {
	env  string
	port string
}

func NewInfoHandler(env, port string) *InfoHandler {
	return &InfoHandler{env: env, port: port}
}

// Info describes the upload service and its endpoints.
func (h *InfoHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "Court Cases Image Upload Server",
		"status":      "running",
		"environment": h.env,
		"port":        h.port,
		"endpoints": fiber.Map{
			"upload":         "POST /api/court-cases/upload",
			"uploadMultiple": "POST /api/court-cases/upload-multiple",
			"deleteUser":     "DELETE /api/users/:uid",
			"photos":         "GET /photos/:filename",
			"health":         "GET /health",
			"metrics":        "GET /metrics",
		},
	})
}
