package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// AccountRemover is the provider operation behind DELETE /api/users/:uid.
type AccountRemover interface {
	DeleteAccount(uid string) error
}

type AccountHandler struct {
	accounts AccountRemover
}

// NewAccountHandler accepts a nil remover; deletions then fail with 500.
func NewAccountHandler(accounts AccountRemover) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if h.accounts == nil {
		metrics.AccountDeletions.WithLabelValues(metrics.ResultError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.AccountDeleteResponse{
			Error: "Auth provider not configured",
		})
	}

	uid := c.Params("uid")
	if uid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AccountDeleteResponse{
			Error: "User UID is required",
		})
	}

	if err := h.accounts.DeleteAccount(uid); err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			metrics.AccountDeletions.WithLabelValues(metrics.ResultRejected).Inc()
			return c.Status(fiber.StatusNotFound).JSON(dto.AccountDeleteResponse{
				Error: "User not found",
			})
		}
		metrics.AccountDeletions.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("account delete failed", "uid", uid, "action", "delete-account", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.AccountDeleteResponse{
			Error: "Failed to delete user",
		})
	}

	metrics.AccountDeletions.WithLabelValues(metrics.ResultOK).Inc()
	slog.Info("auth account deleted", "uid", uid)
	return c.JSON(dto.AccountDeleteResponse{
		Success: true,
		Message: "User deleted from auth provider successfully",
	})
}
