package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.Catalog.Categories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var p struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	id, err := h.Catalog.CreateCategory(p.Name)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.create", map[string]any{"id": id, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(domain.Category{ID: id, Name: p.Name})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fmt.Errorf("%w: category id must be numeric", domain.ErrValidation))
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"Status": true})
}

func (h *CatalogHandler) Shops(c *fiber.Ctx) error {
	out, err := h.Catalog.ActiveShops()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteShop(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fmt.Errorf("%w: shop id must be numeric", domain.ErrValidation))
	}
	if err := h.Catalog.DeleteShop(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "shop.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"Status": true})
}

// Products searches listings, narrowed by shop_id and/or category_id.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	shopID, _ := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	out, err := h.Catalog.Listings(shopID, categoryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
