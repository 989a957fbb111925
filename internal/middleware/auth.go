package middleware

import (
	"strings"

	"wealthwise-backend/internal/application/auth"
	"wealthwise-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDLocal = "user_id"

// RequireAuth validates the Bearer token and stores the authenticated user id
// in Locals. Returns 401 with the standard error format on any failure.
func RequireAuth(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "Missing bearer token")
		}
		userID, err := svc.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// GetUserID returns the authenticated user id set by RequireAuth.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDLocal).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
