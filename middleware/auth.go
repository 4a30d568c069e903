package middleware

import (
	"notes-sync/session"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves "Authorization: Bearer <session-id>" to a user id
// through the session store and stores it in request locals. The engine
// never validates credentials itself; sessions are only issued after the
// upstream identity provider has vouched for the user.
func AuthRequired(sessionStore *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		sess, err := sessionStore.Get(parts[1])
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Session lookup failed",
			})
		}
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals("userID", sess.UserID)
		c.Locals("session", sess)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}
