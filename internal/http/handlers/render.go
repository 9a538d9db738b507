package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "decantly/internal/log"
	"decantly/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(tmpl, data)
}

// apiError maps a service error onto the JSON surface: validation problems
// are the caller's to fix, stale ids are 404, everything else is a store
// failure that gets logged in full and reported blandly.
func apiError(c *fiber.Ctx, action string, err error) error {
	switch {
	case services.IsValidation(err):
		applog.Warn(c, action+".reject", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "save failed, nothing was changed; please retry"})
	}
}
