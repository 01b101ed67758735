package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

const (
	LocalUserID = "userID"
	LocalRole   = "role"
)

// Auth verifies the bearer token and stores the caller's identity in
// the request locals.
func Auth(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization"})
		}
		claims, err := tokens.VerifyToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole rejects callers whose token carries another role. It must
// run after Auth.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, _ := c.Locals(LocalRole).(models.Role); got != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "wrong role"})
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's id set by Auth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
