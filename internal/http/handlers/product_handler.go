package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
}

// Detail shows a product and counts the view.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.ViewProduct(c.UserContext(), actor(c), id)
	if err != nil {
		return fail(c, "product.view.fail", err)
	}
	avail, err := h.Inv.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.availability.fail", err)
	}
	return render(c, "product", fiber.Map{"P": p, "Avail": avail})
}

// GET /api/v1/products/:id
func (h *ProductHandler) JSON(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return failJSON(c, "api.product.fail", err)
	}
	return c.JSON(p)
}
