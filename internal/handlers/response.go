package handlers

import (
	"errors"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Debug().Err(err).Str("path", c.Path()).Msg("Error parsing request body")
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}

// writeError maps service and repository errors to the fixed status set.
// Unexpected errors are logged and answered with fallback.
func writeError(c *fiber.Ctx, err error, notFound, fallback string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  verr.Fields(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(fallback)
		return errorJSON(c, fiber.StatusInternalServerError, fallback)
	}
}
