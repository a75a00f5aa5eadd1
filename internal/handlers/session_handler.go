package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	provider  *identity.Provider
	resolver  *session.Resolver
	directory session.Directory
}

func NewSessionHandler(provider *identity.Provider, resolver *session.Resolver, directory session.Directory) *SessionHandler {
	return &SessionHandler{provider: provider, resolver: resolver, directory: directory}
}

type loginFunc func(ctx *session.Context, email, password string) (session.State, error)

// Login signs in without the enabled check.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	return h.login(c, (*session.Context).Login)
}

// UserLogin signs in and rejects disabled directory users.
func (h *SessionHandler) UserLogin(c *fiber.Ctx) error {
	return h.login(c, (*session.Context).LoginAsUser)
}

func (h *SessionHandler) login(c *fiber.Ctx, fn loginFunc) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	s := h.provider.NewSession(fmt.Sprintf("login-%d", time.Now().UnixMilli()))
	ctx := session.NewContext(s, h.resolver, h.directory)
	defer ctx.Close()

	st, err := fn(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Invalid email or password"})
	case errors.Is(err, session.ErrAccountDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: middleware.DisabledMessage})
	case err != nil:
		return respondError(c, err)
	case !st.IsAuthenticated():
		// Expelled by the disabled-user recheck.
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: middleware.DisabledMessage})
	}

	token, err := h.provider.IssueToken(st.Identity)
	if err != nil {
		return respondError(c, err)
	}

	slog.Info("session started", "uid", st.Identity.UID, "role", string(st.Role))
	return c.JSON(dto.LoginResponse{Token: token, User: sessionUser(st)})
}

// Logout is acknowledged only; tokens are stateless and dropped by the client.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// Me verifies the token and reports the caller's current role.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	id, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	st, err := h.resolver.Resolve(id)
	if err != nil {
		slog.Error("role lookup failed", "uid", id.UID, "error", err)
	}
	if st.Role == session.RoleDisabledRejected {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: middleware.DisabledMessage})
	}

	user := sessionUser(st)
	return c.JSON(dto.MeResponse{User: &user})
}

func sessionUser(st session.State) dto.SessionUser {
	return dto.SessionUser{
		UID:   st.Identity.UID,
		Email: st.Identity.Email,
		Role:  string(st.Role),
		Admin: st.IsAdmin(),
	}
}
