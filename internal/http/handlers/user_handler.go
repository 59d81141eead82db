package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type UserHandler struct {
	Auth *services.AuthService
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var p registerPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return fail(c, fmt.Errorf("%w: username, email and password required", domain.ErrValidation))
	}
	u, err := h.Auth.Register(p.Email, p.Username, p.Password, p.Role)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) Confirm(c *fiber.Ctx) error {
	var p struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if err := h.Auth.Confirm(p.Email, p.Token); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.confirm", map[string]any{"email": p.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"Status": true})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	token, err := h.Auth.Login(p.Email, p.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": p.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": p.Email})
	return c.JSON(fiber.Map{"Token": token})
}

func (h *UserHandler) Details(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (h *UserHandler) UpdateDetails(c *fiber.Ctx) error {
	var p struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}
	if p.Username == "" {
		return fail(c, fmt.Errorf("%w: nothing to update", domain.ErrValidation))
	}
	u := currentUser(c)
	if err := h.Auth.Users.UpdateProfile(u.ID, p.Username); err != nil {
		return fail(c, err)
	}
	fresh, err := h.Auth.Users.ByID(u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fresh)
}
