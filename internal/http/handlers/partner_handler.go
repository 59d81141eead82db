package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type PartnerHandler struct {
	Partner *services.PartnerService
}

// Update ingests the price-list feed at the submitted url into the
// partner's catalog.
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	var p struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	res, err := h.Partner.Ingest(c.UserContext(), currentUser(c).ID, p.URL)
	if err != nil {
		applog.Error(c, "partner.update.fail", err, map[string]any{"url": p.URL})
		return fail(c, err)
	}
	applog.Audit(c, "partner.update", map[string]any{
		"shop":       res.ShopID,
		"categories": res.Categories,
		"goods":      res.Goods,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"Status": true, "Result": res})
}

func (h *PartnerHandler) State(c *fiber.Ctx) error {
	shop, err := h.Partner.State(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shop)
}

func (h *PartnerHandler) SetState(c *fiber.Ctx) error {
	var p struct {
		State string `json:"state"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.State == "" {
		return fail(c, fmt.Errorf("%w: state required", domain.ErrValidation))
	}
	if err := h.Partner.SetState(currentUser(c).ID, p.State); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "partner.state", map[string]any{"state": p.State})
	return c.JSON(fiber.Map{"Status": true})
}

func (h *PartnerHandler) Orders(c *fiber.Ctx) error {
	out, err := h.Partner.PlacedOrders(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
