package handlers

import (
	"github.com/jmoiron/sqlx"

	"decantly/internal/config"
	"decantly/internal/enrich"
	"decantly/internal/repos"
	"decantly/internal/services"
)

type Deps struct {
	PerfumeHandler *PerfumeHandler
	OrderHandler   *OrderHandler
	PageHandler    *PageHandler
	EnrichHandler  *EnrichHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	perfumeRepo := repos.NewPerfumeRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	perfumeSvc := services.NewPerfumeService(perfumeRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, perfumeRepo, cfg.PaymentNote)
	catalog := enrich.NewClient(cfg.CatalogTimeout)

	return &Deps{
		PerfumeHandler: &PerfumeHandler{Perfumes: perfumeSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		PageHandler:    &PageHandler{Perfumes: perfumeSvc, Orders: orderSvc},
		EnrichHandler:  &EnrichHandler{Catalog: catalog},
	}
}
