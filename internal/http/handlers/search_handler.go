package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}

	products, err := h.Catalog.Search(c.UserContext(), actor(c), q)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	p := paginate(len(products), validate.Page(c.Query("page")))
	return render(c, "search", fiber.Map{
		"Q": q, "Products": products[p.From:p.To], "Count": len(products), "Page": p,
	})
}
