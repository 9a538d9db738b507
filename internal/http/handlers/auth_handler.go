package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "decantly/internal/log"
	"decantly/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if !h.Auth.Enabled() {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid, err := h.Auth.Login(c.FormValue("password"))
	if err != nil {
		applog.Warn(c, "auth.login.fail", nil)
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Nieprawidłowe hasło."})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	applog.Info(c, "auth.login", nil)
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
		c.ClearCookie("sid")
	}
	return c.Redirect("/login")
}

// RequireOwner gates every page and API route when a password is set.
func RequireOwner(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth.LoggedIn(c.Cookies("sid")) {
			return c.Next()
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		return c.Redirect("/login")
	}
}
