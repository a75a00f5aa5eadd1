package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
)

// DisabledMessage is shown to disabled users.
const DisabledMessage = "Your account has been disabled. Please contact the administrator."

// Authorize resolves the caller's role on every request and rejects it
// unless allowed(state) holds. Must run after JWTProtected. The resolved
// state is stored for handlers (see GetState).
func Authorize(resolver *session.Resolver, allowed session.Capability, deny string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := GetIdentity(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		st, err := resolver.Resolve(id)
		if err != nil {
			slog.Error("role lookup failed",
				"uid", id.UID,
				"request_id", c.Locals("requestid"),
				"error", err,
			)
		}

		if st.Role == session.RoleDisabledRejected {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: DisabledMessage,
			})
		}
		if allowed != nil && !allowed(st) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: deny,
			})
		}

		c.Locals(stateKey, st)
		return c.Next()
	}
}

// AdminRequired allows administrators only.
func AdminRequired(resolver *session.Resolver) fiber.Handler {
	return Authorize(resolver, session.ManageUsers, "Admin access required")
}

// EditorRequired allows administrators and enabled users.
func EditorRequired(resolver *session.Resolver) fiber.Handler {
	return Authorize(resolver, session.EditCases, "You do not have permission to edit cases")
}
