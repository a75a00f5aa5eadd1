package handlers

import (
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	directory *services.DirectoryService
}

func NewUserHandler(directory *services.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

func userID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.ErrUserNotFound
	}
	return id, nil
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.directory.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.directory.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserCreatedResponse{
		Message: "User created successfully",
		ID:      user.ID.String(),
	})
}

func (h *UserHandler) ToggleEnabled(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ToggleEnabledRequest
	if err := c.BodyParser(&req); err != nil || req.IsEnabled == nil {
		return badRequest(c, "isEnabled is required")
	}

	if err := h.directory.ToggleEnabled(id, *req.IsEnabled); err != nil {
		return respondError(c, err)
	}
	msg := "User disabled"
	if *req.IsEnabled {
		msg = "User enabled"
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}

	outcome, err := h.directory.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteUserResponse{
		Message:        "User deleted",
		RecordRemoved:  outcome.RecordRemoved,
		AccountRemoved: outcome.AccountRemoved,
		AccountError:   outcome.AccountError,
	})
}
