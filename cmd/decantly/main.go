package main

import (
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"decantly/internal/config"
	"decantly/internal/http/handlers"
	applog "decantly/internal/log"
	"decantly/internal/repos"
	"decantly/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring. With no APP_PASSWORD set the gate stays open, which is
	// the normal mode for a tool running on the owner's own machine.
	sessionRepo := repos.NewSessionRepo(db)
	authSvc, err := services.NewAuthService(sessionRepo, cfg.AppPassword)
	if err != nil {
		log.Fatal(err)
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Coś poszło nie tak. Spróbuj ponownie.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Coś poszło nie tak. Spróbuj ponownie.")
			}
			return nil
		},
	})
	// Perfume images arrive as base64 form fields, so leave headroom.
	app.Server().MaxRequestBodySize = 8 << 20

	app.Use(requestid.New())
	app.Use(logger.New())

	// Auth routes stay outside the gate.
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	app.Use(handlers.RequireOwner(authSvc))

	deps := handlers.NewDeps(db, cfg)

	// Pages
	app.Get("/", deps.PageHandler.Dashboard)
	app.Get("/orders", deps.PageHandler.OrdersPage)
	app.Post("/perfumes", deps.PerfumeHandler.CreateForm)

	// API
	api := app.Group("/api/v1")
	api.Get("/perfumes", deps.PerfumeHandler.List)
	api.Post("/perfumes", deps.PerfumeHandler.Create)
	api.Put("/perfumes/:id", deps.PerfumeHandler.Update)
	api.Delete("/perfumes/:id", deps.PerfumeHandler.Delete)
	api.Get("/perfumes/:id/metrics", deps.PerfumeHandler.Metrics)

	api.Get("/orders", deps.OrderHandler.List)
	api.Post("/orders", deps.OrderHandler.Create)
	api.Post("/orders/quote", deps.OrderHandler.Quote)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Put("/orders/:id", deps.OrderHandler.Update)
	api.Delete("/orders/:id", deps.OrderHandler.Delete)

	api.Post("/enrich", deps.EnrichHandler.Fetch)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Nie znaleziono strony"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
