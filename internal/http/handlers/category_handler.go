package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "home.categories.fail", err)
	}
	return render(c, "home", fiber.Map{"Categories": cats})
}
