package middleware

import (
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "user"
	stateKey = "session"
)

// GetIdentity extracts the verified identity from the JWT in context.
func GetIdentity(c *fiber.Ctx) (*identity.Identity, error) {
	token, _ := c.Locals(tokenKey).(*jwt.Token)
	return identity.FromToken(token)
}

// GetState returns the state stored by Authorize, or an anonymous one.
func GetState(c *fiber.Ctx) session.State {
	if st, ok := c.Locals(stateKey).(session.State); ok {
		return st
	}
	return session.State{Role: session.RoleAnonymous}
}
