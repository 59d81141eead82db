package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

// Permission is one access predicate; routes compose them with AND via
// Require.
type Permission func(u *domain.User, c *fiber.Ctx) bool

func IsAuthenticated(u *domain.User, c *fiber.Ctx) bool {
	return u != nil && u.IsActive
}

func IsPartner(u *domain.User, c *fiber.Ctx) bool {
	return u != nil && u.Role == domain.RoleShop
}

func IsAdmin(u *domain.User, c *fiber.Ctx) bool {
	return u != nil && u.Role == domain.RoleAdmin
}

// IsAdminOrReadOnly lets anyone read but restricts writes to admins.
func IsAdminOrReadOnly(u *domain.User, c *fiber.Ctx) bool {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return IsAdmin(u, c)
}

// Authenticate resolves the "Authorization: Token <key>" header into
// the current user. Missing or bad tokens just leave the request
// anonymous; Require decides whether that matters.
func Authenticate(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if key, ok := strings.CutPrefix(header, "Token "); ok {
			if u, err := auth.CurrentUser(strings.TrimSpace(key)); err == nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

func Require(perms ...Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := c.Locals("user").(*domain.User)
		for _, p := range perms {
			if p(u, c) {
				continue
			}
			if u == nil {
				return fail(c, domain.ErrAuth)
			}
			applog.Security(c, "access.denied", map[string]any{"role": u.Role})
			return fail(c, domain.ErrPermission)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
