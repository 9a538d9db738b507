package handlers

import (
	"github.com/gofiber/fiber/v2"

	"decantly/internal/domain"
	"decantly/internal/services"
)

type PageHandler struct {
	Perfumes *services.PerfumeService
	Orders   *services.OrderService
}

// Dashboard is the perfume shelf: every perfume with its live stock and
// balance metrics, plus the quick-add form.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	rows, err := h.Perfumes.Overview(perfumeFilter(c))
	if err != nil {
		return apiError(c, "page.dashboard", err)
	}
	return render(c, "index", fiber.Map{
		"Perfumes": rows,
		"Query":    c.Query("q"),
		"Status":   c.Query("status"),
		"Volumes":  domain.StandardVolumes,
	})
}

func (h *PageHandler) OrdersPage(c *fiber.Ctx) error {
	f := services.OrderListFilter{Status: c.Query("status")}
	f.Buyer = c.Query("buyer")
	f.SplitOnly = c.QueryBool("split")
	rows, err := h.Orders.List(f)
	if err != nil {
		return apiError(c, "page.orders", err)
	}
	return render(c, "orders", fiber.Map{
		"Orders":   rows,
		"Status":   f.Status,
		"Buyer":    f.Buyer,
		"Shipping": domain.ShippingMethods(),
	})
}
