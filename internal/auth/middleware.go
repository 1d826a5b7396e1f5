package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the fiber locals key holding the authenticated user's id.
const UserIDKey = "user_id"

// Middleware returns a fiber handler that rejects requests without a valid
// bearer token and stores the token's user id in the request locals.
func Middleware(issuer *TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		userID, err := issuer.Parse(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user's id from the request locals.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", fiber.NewError(fiber.StatusUnauthorized, "malformed Authorization header")
	}
	return strings.TrimPrefix(header, prefix), nil
}
