package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "decantly/internal/log"
	"decantly/internal/pricing"
	"decantly/internal/repos"
	"decantly/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	f := services.OrderListFilter{
		OrderFilter: repos.OrderFilter{
			Buyer:     strings.ToLower(strings.TrimSpace(c.Query("buyer"))),
			SplitOnly: c.QueryBool("split"),
		},
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	out, err := h.Orders.List(f)
	if err != nil {
		return apiError(c, "order.list", err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, items, err := h.Orders.Get(c.Params("id"))
	if err != nil {
		return apiError(c, "order.get", err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	o, err := h.Orders.Create(in)
	if err != nil {
		return apiError(c, "order.create", err)
	}
	applog.Audit(c, "order.create", map[string]any{"id": o.ID, "buyer": o.Buyer, "total": o.Total})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	o, err := h.Orders.Update(c.Params("id"), in)
	if err != nil {
		return apiError(c, "order.update", err)
	}
	applog.Audit(c, "order.update", map[string]any{"id": o.ID, "total": o.Total})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Orders.Delete(id); err != nil {
		return apiError(c, "order.delete", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

type quoteRequest struct {
	Items    []services.ItemInput `json:"items"`
	Shipping string               `json:"shipping"`
}

type quoteResponse struct {
	Quote   pricing.Quote `json:"quote"`
	Total   float64       `json:"total"`
	Message string        `json:"message"`
}

// Quote prices an in-progress order and returns the ready-to-paste buyer
// message. Nothing is saved.
func (h *OrderHandler) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	q, msg, err := h.Orders.Quote(req.Items, req.Shipping)
	if err != nil {
		return apiError(c, "order.quote", err)
	}
	return c.JSON(quoteResponse{Quote: q, Total: pricing.Round2(q.Total), Message: msg})
}
