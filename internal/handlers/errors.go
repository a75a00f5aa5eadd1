package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the case API's error body. Server
// side failures are logged and answered with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	var v *services.ValidationError
	var up *services.UpstreamError
	switch {
	case errors.As(err, &v):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: v.Error()})
	case errors.Is(err, services.ErrCaseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Court case not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "User not found"})
	case errors.Is(err, services.ErrCaseTrashed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, identity.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: "Email already registered"})
	case errors.As(err, &up):
		slog.Error("upstream call failed",
			"action", up.Service+" "+up.Op,
			"request_id", c.Locals("requestid"),
			"error", up.Err,
		)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: true, Message: "Upstream service unavailable"})
	}

	slog.Error("request failed",
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}
