package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

// itemsPayload carries the JSON-encoded items string used by the cart
// endpoints: an array of objects for add/update, a comma-separated id
// list for delete.
type itemsPayload struct {
	Items string `json:"items"`
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.Cart.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var p itemsPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	created, err := h.Cart.AddItems(currentUser(c).ID, p.Items)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.add", map[string]any{"created": created})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"Created": created})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	var p itemsPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	updated, err := h.Cart.UpdateQuantities(currentUser(c).ID, p.Items)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.update", map[string]any{"updated": updated})
	return c.JSON(fiber.Map{"Updated": updated})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var p itemsPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	deleted, err := h.Cart.RemoveItems(currentUser(c).ID, p.Items)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"deleted": deleted})
	return c.JSON(fiber.Map{"Deleted": deleted})
}
