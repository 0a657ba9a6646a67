package handler

import (
	"errors"

	"go-inventory-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// getUserID reads the authenticated user's ID from the JWT context.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user in context")
	}
	return uuid.Parse(raw)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps service errors to HTTP statuses. Unexpected errors are
// logged and surfaced as a generic internal error without leaking internals.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotConfigured),
		errors.Is(err, service.ErrRateUnavailable),
		errors.Is(err, service.ErrDuplicateSKU):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
