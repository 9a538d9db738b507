// Package stock derives per-perfume inventory and financial metrics from the
// full line-item history. Nothing here is cached or persisted: every view
// recomputes, so the numbers always match the orders as they stand.
package stock

import (
	"decantly/internal/domain"
	"decantly/internal/pricing"
)

// HandlingPerItem is the flat handling cost booked against a perfume for
// each paid line item sold from it.
const HandlingPerItem = 3.00

// Stock level bands for the dashboard.
const (
	BandHealthy  = "healthy"  // remaining > 50 ml
	BandLow      = "low"      // 20 < remaining <= 50 ml
	BandCritical = "critical" // remaining <= 20 ml
)

// Balance bands.
const (
	BandProfit  = "profit"
	BandLoss    = "loss"
	BandNeutral = "neutral"
)

// Metrics is the derived state of one perfume.
type Metrics struct {
	UsedML      float64 `json:"used_ml"`
	RemainingML float64 `json:"remaining_ml"`
	PaidCount   int     `json:"paid_count"`
	GrossSales  float64 `json:"gross_sales"`
	FixedCosts  float64 `json:"fixed_costs"`
	Balance     float64 `json:"balance"`

	StockBand   string `json:"stock_band"`
	BalanceBand string `json:"balance_band"`
}

// Aggregate recomputes metrics for a perfume from every line item that ever
// referenced it. Gratis items consume volume but earn nothing. Items whose
// perfume has since been deleted simply arrive in someone else's history, so
// a dangling reference here is the caller's non-problem: the function only
// sees items already filtered to this perfume. Over-allocated stock clamps
// to zero rather than going negative.
func Aggregate(p domain.Perfume, items []domain.OrderItem) Metrics {
	var m Metrics
	for _, it := range items {
		m.UsedML += it.QuantityML
		if it.PricePerML > 0 {
			m.PaidCount++
			m.GrossSales += it.QuantityML * it.PricePerML
		}
	}
	m.GrossSales += float64(m.PaidCount) * pricing.VialCost
	m.FixedCosts = float64(m.PaidCount) * HandlingPerItem
	m.Balance = m.GrossSales - p.PurchasePrice - m.FixedCosts

	m.RemainingML = p.ToDecantML - m.UsedML
	if m.RemainingML < 0 {
		m.RemainingML = 0
	}

	switch {
	case m.RemainingML > 50:
		m.StockBand = BandHealthy
	case m.RemainingML > 20:
		m.StockBand = BandLow
	default:
		m.StockBand = BandCritical
	}
	switch {
	case m.Balance > 0:
		m.BalanceBand = BandProfit
	case m.Balance < 0:
		m.BalanceBand = BandLoss
	default:
		m.BalanceBand = BandNeutral
	}
	return m
}
