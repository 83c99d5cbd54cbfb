// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// userIDKey is the fiber locals key for the authenticated user ID.
const userIDKey = "userID"

// TokenValidator is an interface for validating JWT tokens.
type TokenValidator[C UserIDGetter] interface {
	ValidateToken(tokenString string) (C, error)
}

// UserIDGetter is an interface for extracting user ID from token claims.
type UserIDGetter interface {
	GetUserID() string
}

// Auth creates middleware that validates bearer tokens and stores the user ID
// in the request locals.
func Auth[C UserIDGetter](validator TokenValidator[C]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(userIDKey, claims.GetUserID())
		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by Auth.
func UserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(userIDKey).(string)
	return id, ok && id != ""
}

// bearerToken parses "Bearer <token>", accepting any case for the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
}
