package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

const friendlyError = "Something went wrong. Please try again."

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a, ok := c.Locals("actor").(*domain.Actor); ok && a != nil {
		data["Actor"] = a
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// problem maps a store error onto a status and a message that is safe to show.
func problem(err error) (int, string) {
	var ise *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrTransactionFailure):
		return fiber.StatusInternalServerError, "Your order could not be placed and nothing was changed. Please try again."
	case errors.As(err, &ise):
		return fiber.StatusConflict, ise.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusConflict, "Your cart is empty."
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	default:
		return fiber.StatusInternalServerError, friendlyError
	}
}

func fail(c *fiber.Ctx, action string, err error) error {
	status, msg := problem(err)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
	} else {
		applog.Info(c, action, map[string]any{"error": err.Error()})
	}
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

func failJSON(c *fiber.Ctx, action string, err error) error {
	status, msg := problem(err)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ErrorHandler logs the failure and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		status = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"status": status})
	msg := friendlyError
	if status == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if rerr := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
