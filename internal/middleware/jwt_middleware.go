package middleware

import (
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Locals keys set by RequireRole.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// RequireRole is a Fiber middleware that requires a valid JWT token whose
// "role" claim equals role. Missing or invalid tokens get 401, a valid token
// with another role gets 403.
func RequireRole(authService *services.AuthService, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return deny(c, fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return deny(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claimedRole, _ := claims["role"].(string)
		if claimedRole != role {
			log.Warn().Str("path", c.Path()).Str("role", claimedRole).Msg("Forbidden: role mismatch")
			return deny(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		c.Locals(LocalUserID, claims["user_id"])
		c.Locals(LocalUsername, claims["username"])
		c.Locals(LocalRole, claimedRole)

		return c.Next()
	}
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
