package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.Order.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Place turns the caller's cart into a placed order:
// {"id": <order>, "contact": <contact>}. Both fields may arrive as JSON
// numbers or numeric strings.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var p struct {
		ID      any `json:"id"`
		Contact any `json:"contact"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.ID == nil || p.Contact == nil {
		return fail(c, fmt.Errorf("%w: id and contact required", domain.ErrValidation))
	}
	if err := h.Order.Place(currentUser(c).ID, asString(p.ID), asString(p.Contact)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": asString(p.ID)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"Status": true})
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return fmt.Sprint(v)
	}
}
