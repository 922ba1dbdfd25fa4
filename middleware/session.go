package middleware

import (
	"github.com/gofiber/fiber/v2"

	"labelbox/auth"
	"labelbox/utils"
)

// RequireSession returns a middleware that admits only requests carrying a
// valid session cookie. On success the verified identity is stashed in
// c.Locals("userID") and c.Locals("email") for downstream handlers; on
// failure the request is rejected with 401 before any handler runs.
func RequireSession(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.TokenFromRequest(c)
		if token == "" {
			return utils.UnauthorizedError("missing session cookie", nil)
		}

		claims, err := tokens.Authenticate(token)
		if err != nil {
			return utils.UnauthorizedError("invalid session token", err)
		}

		c.Locals("userID", claims.Subject)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}
