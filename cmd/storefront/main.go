package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	lg, err := applog.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		lg.Fatal("db.open", zap.String("dsn", cfg.DBDSN), zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := repos.SeedIfEmpty(db, services.HashPassword); err != nil {
			lg.Fatal("db.seed", zap.Error(err))
		}
	}

	// Auth wiring
	authSvc := services.NewAuthService(repos.NewUserRepo(db))
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachActor(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// Route-level throttles
	app.Use("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}))
	app.Use("/api/v1/availability", limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		Next:       func(c *fiber.Ctx) bool { return c.Method() != fiber.MethodPost },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}))

	handlers.Mount(app, deps)

	lg.Info("server.start", zap.String("port", cfg.Port), zap.String("db", cfg.DBDSN))
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Fatal("server.stop", zap.Error(err))
	}
}
