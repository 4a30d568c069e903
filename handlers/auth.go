package handlers

import (
	"notes-sync/app"
	"notes-sync/models"

	"github.com/gofiber/fiber/v2"
)

// Login exchanges an upstream-verified identity for a session. Credential
// checking happens in the identity proxy in front of this service; by the
// time a request lands here the X-User-ID header is trusted.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing identity",
			})
		}

		sess, err := a.SessionStore.Create(userID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create session", err)
		}

		return success(c, fiber.Map{
			"session_id": sess.ID,
			"expires_at": sess.ExpiresAt,
		})
	}
}

// Logout revokes the current session
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*models.Session)
		if !ok || sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not logged in",
			})
		}

		if err := a.SessionStore.Delete(sess.ID); err != nil {
			return serverErrorWithDetails(c, "Failed to delete session", err)
		}

		return success(c, fiber.Map{"message": "Logged out"})
	}
}

// Me reports the identity bound to the current session
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*models.Session)
		if !ok || sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not logged in",
			})
		}

		return success(c, fiber.Map{
			"user_id":    sess.UserID,
			"expires_at": sess.ExpiresAt,
		})
	}
}
