package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	uid, ok := validate.ID(c.FormValue("uid"))
	pass := c.FormValue("password")
	if !ok || pass == "" || len(pass) > 72 {
		log.Security(c, "auth.login.fail", map[string]any{"uid": uid, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid user id or password", "CSRFToken": c.Cookies("csrf_")})
	}

	// new sid on every login
	sid := uuid.NewString()
	a, err := h.Auth.Login(c.UserContext(), sid, uid, pass)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			log.Security(c, "auth.login.fail", map[string]any{"uid": uid})
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid user id or password", "CSRFToken": c.Cookies("csrf_")})
		}
		return fail(c, "auth.login.error", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	})

	log.Audit(c, "auth.login.success", map[string]any{"uid": a.UserID, "session_no": a.SessionNo, "role": a.Role})
	if a.IsSales() {
		return c.Redirect("/admin/report")
	}
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !okName || !okEmail || !validate.Password(pass) {
		log.Security(c, "validation.fail", map[string]any{"form": "register"})
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Err":       "Enter a name, a valid email and a password of at least 8 characters with a letter and a digit.",
			"Name":      name,
			"Email":     email,
			"CSRFToken": c.Cookies("csrf_"),
		})
	}

	uid, err := h.Auth.Register(c.UserContext(), name, email, pass)
	if errors.Is(err, services.ErrEmailTaken) {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "email_taken"})
		return c.Status(fiber.StatusConflict).Render("register", fiber.Map{
			"Err": "That email is already registered.", "Name": name, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	if err != nil {
		return fail(c, "auth.register.error", err)
	}

	log.Audit(c, "auth.register", map[string]any{"uid": uid})
	return render(c, "login", fiber.Map{"Msg": "Account created. Your user id is " + uid + "."})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
