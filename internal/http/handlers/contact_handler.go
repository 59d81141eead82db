package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	"orderdesk/internal/repos"
)

type ContactHandler struct {
	Contacts *repos.ContactRepo
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.Contacts.ListByUser(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var p domain.Contact
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.City == "" || p.Street == "" || p.Phone == "" {
		return fail(c, fmt.Errorf("%w: city, street and phone required", domain.ErrValidation))
	}
	p.UserID = currentUser(c).ID
	id, err := h.Contacts.Create(p)
	if err != nil {
		return fail(c, err)
	}
	p.ID = id
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fmt.Errorf("%w: contact id must be numeric", domain.ErrValidation))
	}
	var p domain.Contact
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.City == "" || p.Street == "" || p.Phone == "" {
		return fail(c, fmt.Errorf("%w: city, street and phone required", domain.ErrValidation))
	}
	p.ID = id
	p.UserID = currentUser(c).ID
	n, err := h.Contacts.Update(p)
	if err != nil {
		return fail(c, err)
	}
	if n == 0 {
		return fail(c, domain.ErrNotFound)
	}
	return c.JSON(p)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fmt.Errorf("%w: contact id must be numeric", domain.ErrValidation))
	}
	n, err := h.Contacts.Delete(currentUser(c).ID, id)
	if err != nil {
		return fail(c, err)
	}
	if n == 0 {
		return fail(c, domain.ErrNotFound)
	}
	return c.JSON(fiber.Map{"Status": true})
}
