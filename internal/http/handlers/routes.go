package handlers

import "github.com/gofiber/fiber/v2"

// Mount registers every page and API route. Rate limits and other
// cross-cutting middleware are installed by the caller before Mount.
func Mount(app *fiber.App, d *Deps) {
	user := RequireUser(d.Auth)
	admin := RequireAdmin(d.Auth)

	// Auth
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", d.AuthHandler.Login)
	app.Get("/register", d.AuthHandler.RegisterForm)
	app.Post("/register", d.AuthHandler.Register)
	app.Post("/logout", d.AuthHandler.Logout)

	// Customer pages
	app.Get("/", user, d.CategoryHandler.Home)
	app.Get("/search", user, d.SearchHandler.Search)
	app.Get("/product/:id", user, d.ProductHandler.Detail)
	app.Get("/cart", user, d.CartHandler.View)
	app.Post("/cart", user, d.CartHandler.Add)
	app.Post("/cart/update", user, d.CartHandler.Update)
	app.Post("/cart/remove", user, d.CartHandler.Remove)
	app.Get("/checkout", user, d.OrderHandler.Review)
	app.Post("/orders", user, d.OrderHandler.Place)
	app.Get("/orders", user, d.OrderHandler.History)
	app.Get("/order/:ono", user, d.OrderHandler.View)

	// Sales
	ag := app.Group("/admin", admin)
	ag.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/admin/report") })
	ag.Get("/inventory", d.AdminHandler.Inventory)
	ag.Get("/product", d.AdminHandler.Product)
	ag.Post("/product/:id/price", d.AdminHandler.SetPrice)
	ag.Post("/product/:id/stock", d.AdminHandler.SetStock)
	ag.Get("/report", d.AdminHandler.Report)
	ag.Get("/top", d.AdminHandler.Top)

	// API
	api := app.Group("/api/v1")
	api.Get("/products/:id", d.ProductHandler.JSON)
	api.Get("/availability", d.InventoryHandler.Check)
	api.Get("/admin/top", admin, d.AdminHandler.TopJSON)
	api.Get("/admin/report", admin, d.AdminHandler.ReportJSON)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
