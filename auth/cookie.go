package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie the session token is carried in.
const SessionCookieName = "token"

// SessionCookie wraps a session token into the cookie the browser should
// hold: HTTP-only, secure-transport-only, cross-site none, path /.
func SessionCookie(token string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

// ExpiredSessionCookie returns a cookie that overwrites the session cookie
// with an immediately-expired one. Sessions are stateless, so this is the
// whole of sign-out.
func ExpiredSessionCookie() *fiber.Cookie {
	return SessionCookie("", -time.Hour)
}

// TokenFromRequest reads the session token from the request's cookies.
// Returns "" when the cookie is absent.
func TokenFromRequest(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}
