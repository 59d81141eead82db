package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
)

// fail maps the domain error taxonomy onto {"Errors": ...} responses.
// Anything outside the taxonomy is a 500 with the detail kept out of
// the body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateItem),
		errors.Is(err, domain.ErrMalformedFeed),
		errors.Is(err, domain.ErrFetch):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAuth):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrPermission):
		status = fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	}
	if status == fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
		return c.Status(status).JSON(fiber.Map{"Errors": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"Errors": err.Error()})
}
