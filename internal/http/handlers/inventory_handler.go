package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
	"storefront/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("productId"))
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}
	productID, ok := validate.ID(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid productId",
		})
	}

	avail, err := h.Inv.CheckAvailability(c.UserContext(), productID)
	if err != nil {
		return failJSON(c, "api.availability.fail", err)
	}
	return c.JSON(avail)
}
