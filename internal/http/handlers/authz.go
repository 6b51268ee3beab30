package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

// AttachActor resolves the sid cookie to an actor for templates, logs and guards.
func AttachActor(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if a, err := auth.CurrentActor(c.UserContext(), sid); err == nil && a != nil {
				c.Locals("actor", a)
				c.Locals("uid", a.UserID)
			}
		}
		return c.Next()
	}
}

func currentActor(c *fiber.Ctx, auth *services.AuthService) *domain.Actor {
	if a, ok := c.Locals("actor").(*domain.Actor); ok && a != nil {
		return a
	}
	sid := c.Cookies("sid")
	if sid == "" {
		return nil
	}
	a, err := auth.CurrentActor(c.UserContext(), sid)
	if err != nil || a == nil {
		return nil
	}
	c.Locals("actor", a)
	c.Locals("uid", a.UserID)
	return a
}

// actor is only valid behind RequireUser or RequireAdmin.
func actor(c *fiber.Ctx) domain.Actor {
	a, _ := c.Locals("actor").(*domain.Actor)
	if a == nil {
		return domain.Actor{}
	}
	return *a
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a := currentActor(c, auth)
		if a == nil {
			return c.Redirect("/login")
		}
		if !a.IsSales() {
			applog.Security(c, "access.denied.admin", map[string]any{"uid": a.UserID})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentActor(c, auth) == nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
