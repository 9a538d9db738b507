package pricing

import (
	"math"

	"decantly/internal/domain"
)

// VialCost is the flat charge per paid line item: the decant vial plus
// packaging. Inventory aggregation uses the same constant so the two sides
// of the books can never drift apart.
const VialCost = 4.00

// Line carries the item-level inputs of the order total.
type Line struct {
	QuantityML float64
	PricePerML float64
	Gratis     bool
}

// Subtotal is quantity times unit price; gratis lines are always zero.
func (l Line) Subtotal() float64 {
	if l.Gratis {
		return 0
	}
	return l.QuantityML * l.PricePerML
}

// Quote is the full breakdown of an order total.
type Quote struct {
	ItemsTotal   float64
	PaidCount    int
	VialTotal    float64
	ShippingCost float64
	Total        float64
}

// Compute derives the payable total for a set of lines and a shipping method
// key. Gratis lines contribute nothing and do not count as paid items. An
// unknown shipping key costs nothing (see domain.ShippingCost). Values are
// accumulated in full precision; round only at the storage or display edge.
func Compute(lines []Line, shipping string) Quote {
	var q Quote
	for _, l := range lines {
		if l.Gratis {
			continue
		}
		q.ItemsTotal += l.Subtotal()
		q.PaidCount++
	}
	q.VialTotal = float64(q.PaidCount) * VialCost
	q.ShippingCost, _ = domain.ShippingCost(shipping)
	q.Total = q.ItemsTotal + q.ShippingCost + q.VialTotal
	return q
}

// ComputeTotal is Compute reduced to the payable total.
func ComputeTotal(lines []Line, shipping string) float64 {
	return Compute(lines, shipping).Total
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
