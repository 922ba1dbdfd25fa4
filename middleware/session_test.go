package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"labelbox/auth"
	"labelbox/handlers/api"
)

func newGatedApp(tokens *auth.TokenManager, invoked *bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})
	app.Get("/protected", RequireSession(tokens), func(c *fiber.Ctx) error {
		*invoked = true
		return api.Respond(c, fiber.StatusOK, fiber.Map{
			"user_id": c.Locals("userID"),
			"email":   c.Locals("email"),
		})
	})
	return app
}

func TestRequireSession_MissingCookie(t *testing.T) {
	t.Parallel()

	invoked := false
	app := newGatedApp(auth.NewTokenManager("secret", time.Hour), &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want 401", resp.StatusCode)
	}
	if invoked {
		t.Fatalf("handler must not run without a session cookie")
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	t.Parallel()

	invoked := false
	app := newGatedApp(auth.NewTokenManager("secret", time.Hour), &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want 401", resp.StatusCode)
	}
	if invoked {
		t.Fatalf("handler must not run with an invalid token")
	}
}

func TestRequireSession_ExpiredToken(t *testing.T) {
	t.Parallel()

	invoked := false
	expired := auth.NewTokenManager("secret", -time.Minute)
	app := newGatedApp(auth.NewTokenManager("secret", time.Hour), &invoked)

	tok, err := expired.Issue("u1", "a@b.c")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want 401", resp.StatusCode)
	}
	if invoked {
		t.Fatalf("handler must not run with an expired token")
	}
}

func TestRequireSession_ValidToken(t *testing.T) {
	t.Parallel()

	invoked := false
	tokens := auth.NewTokenManager("secret", time.Hour)
	app := newGatedApp(tokens, &invoked)

	tok, err := tokens.Issue("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status mismatch: got %d want 200", resp.StatusCode)
	}
	if !invoked {
		t.Fatalf("handler should have run for a valid session")
	}

	var env struct {
		Data struct {
			UserID string `json:"user_id"`
			Email  string `json:"email"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if env.Data.UserID != "user-1" || env.Data.Email != "a@b.c" {
		t.Fatalf("locals mismatch: %+v", env.Data)
	}
}
