package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type stubDirectory map[string]*models.DirectoryUser

func (d stubDirectory) GetByEmail(email string) (*models.DirectoryUser, error) {
	if email == "broken@example.com" {
		return nil, errors.New("store offline")
	}
	return d[email], nil
}

func (d stubDirectory) IsEnabled(email string) (bool, error) {
	if u := d[email]; u != nil {
		return u.IsEnabled, nil
	}
	return true, nil
}

func guarded(recheck bool, guard func(*session.Resolver) fiber.Handler) *fiber.App {
	dir := stubDirectory{
		"clerk@example.com": {Email: "clerk@example.com", IsEnabled: true},
		"gone@example.com":  {Email: "gone@example.com", IsEnabled: false},
		"chief@example.com": {Email: "chief@example.com", IsEnabled: true, IsAdmin: true},
	}
	resolver := session.NewResolver([]string{"admin@courtcases.com"}, dir, recheck)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if email := c.Get("X-Email"); email != "" {
			c.Locals(tokenKey, jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "uid-" + email, "email": email,
			}))
		}
		return c.Next()
	})
	app.Get("/", guard(resolver), func(c *fiber.Ctx) error {
		return c.SendString(string(GetState(c).Role))
	})
	return app
}

func statusFor(t *testing.T, app *fiber.App, email string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if email != "" {
		req.Header.Set("X-Email", email)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp.StatusCode
}

func TestEditorRequired(t *testing.T) {
	app := guarded(false, EditorRequired)

	assert.Equal(t, fiber.StatusUnauthorized, statusFor(t, app, ""))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "admin@courtcases.com"))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "chief@example.com"))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "clerk@example.com"))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "gone@example.com"))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, app, "nobody@example.com"))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, app, "broken@example.com"))
}

func TestAdminRequired(t *testing.T) {
	app := guarded(false, AdminRequired)

	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "admin@courtcases.com"))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "chief@example.com"))
	assert.Equal(t, fiber.StatusForbidden, statusFor(t, app, "clerk@example.com"))
}

func TestRecheckRejectsDisabled(t *testing.T) {
	app := guarded(true, EditorRequired)

	assert.Equal(t, fiber.StatusForbidden, statusFor(t, app, "gone@example.com"))
	assert.Equal(t, fiber.StatusOK, statusFor(t, app, "clerk@example.com"))
}
