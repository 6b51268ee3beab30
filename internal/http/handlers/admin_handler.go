package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// AdminHandler serves the sales role: catalog maintenance and analytics.
type AdminHandler struct {
	Catalog   *services.CatalogService
	Inv       *services.InventoryService
	Analytics *services.AnalyticsService
	TopN      int
	Now       func() time.Time
}

// GET /admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.ListAll(c.UserContext())
	if err != nil {
		return fail(c, "admin.inventory.list.fail", err)
	}
	return render(c, "admin_inventory", fiber.Map{"Rows": rows})
}

// GET /admin/product?id=
func (h *AdminHandler) Product(c *fiber.Ctx) error {
	raw := c.Query("id")
	if raw == "" {
		return render(c, "admin_product", fiber.Map{})
	}
	id, ok := validate.ID(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("admin_product", fiber.Map{"Err": "Invalid product id"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		status, msg := problem(err)
		if status >= fiber.StatusInternalServerError {
			return fail(c, "admin.product.load.fail", err)
		}
		return render(c.Status(status), "admin_product", fiber.Map{"Err": msg, "ID": id})
	}
	return render(c, "admin_product", fiber.Map{"P": p, "ID": id})
}

// POST /admin/product/:id/price
func (h *AdminHandler) SetPrice(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	price, okPrice := validate.Price(c.FormValue("price"))
	if !okID || !okPrice {
		applog.Security(c, "validation.fail", map[string]any{"field": "price", "value": c.FormValue("price")})
		return c.Status(fiber.StatusBadRequest).Render("admin_product", fiber.Map{"Err": "Price must be a positive amount with at most two decimals.", "ID": id})
	}
	if err := h.Catalog.SetPrice(c.UserContext(), id, price); err != nil {
		return fail(c, "admin.product.price.fail", err)
	}
	applog.Audit(c, "admin.product.price", map[string]any{"pid": id, "price": price.StringFixed(2)})
	return c.Redirect("/admin/product?id=" + id)
}

// POST /admin/product/:id/stock
func (h *AdminHandler) SetStock(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	stock, okStock := validate.Stock(c.FormValue("stock"))
	if !okID || !okStock {
		applog.Security(c, "validation.fail", map[string]any{"field": "stock", "value": c.FormValue("stock")})
		return c.Status(fiber.StatusBadRequest).Render("admin_product", fiber.Map{"Err": "Stock must be a whole number of zero or more.", "ID": id})
	}
	if err := h.Catalog.SetStock(c.UserContext(), id, stock); err != nil {
		return fail(c, "admin.product.stock.fail", err)
	}
	applog.Audit(c, "admin.product.stock", map[string]any{"pid": id, "stock": stock})
	return c.Redirect("/admin/product?id=" + id)
}

// GET /admin/report
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	rep, err := h.Analytics.WeeklySalesReport(c.UserContext(), h.Now())
	if err != nil {
		return fail(c, "admin.report.fail", err)
	}
	return render(c, "admin_report", fiber.Map{"R": rep})
}

// GET /admin/top?n=
func (h *AdminHandler) Top(c *fiber.Ctx) error {
	n, ok := h.topN(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "n must be a positive whole number"})
	}
	byOrders, err := h.Analytics.TopByOrders(c.UserContext(), n)
	if err != nil {
		return fail(c, "admin.top.orders.fail", err)
	}
	byViews, err := h.Analytics.TopByViews(c.UserContext(), n)
	if err != nil {
		return fail(c, "admin.top.views.fail", err)
	}
	return render(c, "admin_top", fiber.Map{"N": n, "ByOrders": byOrders, "ByViews": byViews})
}

// GET /api/v1/admin/top?by=orders|views&n=
func (h *AdminHandler) TopJSON(c *fiber.Ctx) error {
	n, ok := h.topN(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "n must be a positive whole number"})
	}
	rank := h.Analytics.TopByOrders
	switch c.Query("by", "orders") {
	case "orders":
	case "views":
		rank = h.Analytics.TopByViews
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "by must be orders or views"})
	}
	items, err := rank(c.UserContext(), n)
	if err != nil {
		return failJSON(c, "api.admin.top.fail", err)
	}
	return c.JSON(fiber.Map{"n": n, "items": items})
}

// GET /api/v1/admin/report
func (h *AdminHandler) ReportJSON(c *fiber.Ctx) error {
	rep, err := h.Analytics.WeeklySalesReport(c.UserContext(), h.Now())
	if err != nil {
		return failJSON(c, "api.admin.report.fail", err)
	}
	return c.JSON(rep)
}

func (h *AdminHandler) topN(c *fiber.Ctx) (int, bool) {
	raw := c.Query("n")
	if raw == "" {
		return h.TopN, h.TopN > 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
