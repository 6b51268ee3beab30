package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

const pageSize = 5

type OrderHandler struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

// GET /checkout
func (h *OrderHandler) Review(c *fiber.Ctx) error {
	cv, err := h.Checkout.Review(c.UserContext(), actor(c))
	if err != nil {
		status, msg := problem(err)
		if status >= fiber.StatusInternalServerError {
			return fail(c, "checkout.load", err)
		}
		return render(c.Status(status), "checkout", fiber.Map{"Cart": cv, "Err": msg})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

// reviewCart reloads the cart for a re-rendered checkout page. Store failures
// are logged; rejections are already reported by the caller.
func (h *OrderHandler) reviewCart(c *fiber.Ctx, a domain.Actor) domain.Cart {
	cv, err := h.Checkout.Review(c.UserContext(), a)
	if err != nil {
		if status, _ := problem(err); status >= fiber.StatusInternalServerError {
			applog.Error(c, "checkout.review.fail", err, map[string]any{"cid": a.CustomerID, "session_no": a.SessionNo})
		}
	}
	return cv
}

// POST /orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	a := actor(c)
	address, ok := validate.Address(c.FormValue("address"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "address"})
		cv := h.reviewCart(c, a)
		return render(c.Status(fiber.StatusBadRequest), "checkout", fiber.Map{"Cart": cv, "Err": "Enter a shipping address."})
	}

	r, err := h.Checkout.Checkout(c.UserContext(), a, address)
	if err != nil {
		status, msg := problem(err)
		if status >= fiber.StatusInternalServerError {
			applog.Error(c, "order.place.fail", err, map[string]any{"cid": a.CustomerID, "session_no": a.SessionNo})
			return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
		}
		applog.Info(c, "order.place.rejected", map[string]any{"cid": a.CustomerID, "error": err.Error()})
		cv := h.reviewCart(c, a)
		return render(c.Status(status), "checkout", fiber.Map{"Cart": cv, "Err": msg, "Address": address})
	}

	applog.Audit(c, "order.place", map[string]any{
		"ono":        r.OrderNo,
		"cid":        a.CustomerID,
		"session_no": a.SessionNo,
		"lines":      len(r.Lines),
		"total":      r.Total.StringFixed(2),
	})
	return c.Redirect("/order/" + strconv.FormatInt(r.OrderNo, 10))
}

// GET /order/:ono
func (h *OrderHandler) View(c *fiber.Ctx) error {
	ono, ok := validate.OrderNo(c.Params("ono"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	d, err := h.Orders.Detail(c.UserContext(), ono)
	if err != nil {
		return fail(c, "order.view.fail", err)
	}

	a := actor(c)
	if !a.IsSales() && d.Order.Customer != a.CustomerID {
		applog.Security(c, "access.denied.order", map[string]any{"ono": ono})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": d})
}

// History lists the logged-in customer's orders, newest first, five per page.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.History(c.UserContext(), actor(c).CustomerID)
	if err != nil {
		return fail(c, "orders.history.fail", err)
	}
	p := paginate(len(orders), validate.Page(c.Query("page")))
	return render(c, "orders", fiber.Map{"Orders": orders[p.From:p.To], "Page": p})
}

type page struct {
	No, From, To int
	Prev, Next   int
}

func paginate(total, no int) page {
	from := (no - 1) * pageSize
	if from > total {
		from = total
	}
	to := from + pageSize
	if to > total {
		to = total
	}
	p := page{No: no, From: from, To: to}
	if no > 1 {
		p.Prev = no - 1
	}
	if to < total {
		p.Next = no + 1
	}
	return p
}
