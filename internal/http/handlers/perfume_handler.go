package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "decantly/internal/log"
	"decantly/internal/repos"
	"decantly/internal/services"
	"decantly/internal/validate"
)

type PerfumeHandler struct {
	Perfumes *services.PerfumeService
}

func perfumeFilter(c *fiber.Ctx) repos.PerfumeFilter {
	return repos.PerfumeFilter{
		Status:    strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Query:     strings.ToLower(strings.TrimSpace(c.Query("q"))),
		SplitOnly: c.QueryBool("split"),
	}
}

// List returns perfumes with their metrics recomputed on this read.
func (h *PerfumeHandler) List(c *fiber.Ctx) error {
	out, err := h.Perfumes.Overview(perfumeFilter(c))
	if err != nil {
		return apiError(c, "perfume.list", err)
	}
	return c.JSON(out)
}

func (h *PerfumeHandler) Create(c *fiber.Ctx) error {
	var in services.PerfumeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, err := h.Perfumes.Create(in)
	if err != nil {
		return apiError(c, "perfume.create", err)
	}
	applog.Audit(c, "perfume.create", map[string]any{"id": p.ID, "name": p.DisplayName()})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// CreateForm handles the quick-add row on the dashboard.
func (h *PerfumeHandler) CreateForm(c *fiber.Ctx) error {
	toDecant, ok := validate.Money(c.FormValue("to_decant_ml"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("Do odlania musi być liczbą nieujemną")
	}
	pricePerML, ok := validate.Money(c.FormValue("price_per_ml"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("Cena za ml musi być liczbą nieujemną")
	}
	purchase, ok := validate.Money(c.FormValue("purchase_price"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("Cena zakupu musi być liczbą nieujemną")
	}

	in := services.PerfumeInput{
		Brand:         c.FormValue("brand"),
		Name:          c.FormValue("name"),
		ToDecantML:    toDecant,
		PricePerML:    pricePerML,
		PurchasePrice: purchase,
	}
	p, err := h.Perfumes.Create(in)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return apiError(c, "perfume.create", err)
	}
	applog.Audit(c, "perfume.create", map[string]any{"id": p.ID, "name": p.DisplayName()})
	return c.Redirect("/")
}

func (h *PerfumeHandler) Update(c *fiber.Ctx) error {
	var in services.PerfumeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, err := h.Perfumes.Update(c.Params("id"), in)
	if err != nil {
		return apiError(c, "perfume.update", err)
	}
	applog.Audit(c, "perfume.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *PerfumeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Perfumes.Delete(id); err != nil {
		return apiError(c, "perfume.delete", err)
	}
	applog.Audit(c, "perfume.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PerfumeHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.Perfumes.Metrics(c.Params("id"))
	if err != nil {
		return apiError(c, "perfume.metrics", err)
	}
	return c.JSON(m)
}
