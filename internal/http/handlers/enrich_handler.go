package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"decantly/internal/enrich"
	applog "decantly/internal/log"
)

type EnrichHandler struct {
	Catalog *enrich.Client
}

// Fetch pulls brand, name and image URL from a catalog page. It never writes
// anything; the caller decides what to copy into the perfume form.
func (h *EnrichHandler) Fetch(c *fiber.Ctx) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	res, err := h.Catalog.Fetch(c.Context(), req.URL)
	if err != nil {
		if errors.Is(err, enrich.ErrUnsupportedURL) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		applog.Warn(c, "enrich.fetch.fail", map[string]any{"url": req.URL, "err": err.Error()})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog fetch failed"})
	}
	applog.Info(c, "enrich.fetch", map[string]any{"url": req.URL})
	return c.JSON(res)
}
