package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) form(c *fiber.Ctx) (string, int, bool) {
	productID, okID := validate.ID(c.FormValue("productId"))
	qty, okQty := validate.Qty(c.FormValue("qty"))
	if !okID || !okQty {
		applog.Security(c, "validation.fail", map[string]any{"field": "cart", "productId": c.FormValue("productId"), "qty": c.FormValue("qty")})
		return "", 0, false
	}
	return productID, qty, true
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, qty, ok := h.form(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Enter a product and a quantity of at least 1."})
	}
	a := actor(c)
	total, err := h.Cart.Add(c.UserContext(), a, productID, qty)
	if err != nil {
		return fail(c, "cart.add.fail", err)
	}
	applog.Info(c, "cart.add", map[string]any{"pid": productID, "qty": qty, "in_cart": total})
	return c.Redirect("/cart")
}

// POST /cart/update
func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, qty, ok := h.form(c)
	if !ok {
		return h.viewWithErr(c, fiber.StatusBadRequest, "Quantity must be at least 1.")
	}
	if err := h.Cart.SetQuantity(c.UserContext(), actor(c), productID, qty); err != nil {
		status, msg := problem(err)
		if status >= fiber.StatusInternalServerError {
			return fail(c, "cart.update.fail", err)
		}
		return h.viewWithErr(c, status, msg)
	}
	applog.Info(c, "cart.update", map[string]any{"pid": productID, "qty": qty})
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return h.viewWithErr(c, fiber.StatusBadRequest, "Unknown product.")
	}
	if err := h.Cart.Remove(c.UserContext(), actor(c), productID); err != nil {
		return fail(c, "cart.remove.fail", err)
	}
	applog.Info(c, "cart.remove", map[string]any{"pid": productID})
	return c.Redirect("/cart")
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.viewWithErr(c, fiber.StatusOK, "")
}

func (h *CartHandler) viewWithErr(c *fiber.Ctx, status int, msg string) error {
	cv, err := h.Cart.View(c.UserContext(), actor(c))
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return render(c.Status(status), "cart", fiber.Map{"Cart": cv, "Err": msg})
}
