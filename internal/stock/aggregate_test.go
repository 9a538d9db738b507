package stock

import (
	"math"
	"reflect"
	"testing"

	"decantly/internal/domain"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestAggregate_OverAllocatedBottle(t *testing.T) {
	p := domain.Perfume{ToDecantML: 100, PurchasePrice: 0}
	items := []domain.OrderItem{
		{QuantityML: 30, PricePerML: 1.5},
		{QuantityML: 40, PricePerML: 1.5},
		{QuantityML: 50, Gratis: true}, // price forced to zero
	}

	m := Aggregate(p, items)

	nearlyEqual(t, "usedML", m.UsedML, 120)
	nearlyEqual(t, "remainingML", m.RemainingML, 0) // clamped, never negative
	if m.PaidCount != 2 {
		t.Fatalf("paidCount = %d, want 2", m.PaidCount)
	}
	nearlyEqual(t, "grossSales", m.GrossSales, 113) // 105 + 2 vials
	nearlyEqual(t, "fixedCosts", m.FixedCosts, 6)
	nearlyEqual(t, "balance", m.Balance, 107)
	if m.StockBand != BandCritical {
		t.Fatalf("stockBand = %s, want %s", m.StockBand, BandCritical)
	}
}

func TestAggregate_GratisConsumesVolumeOnly(t *testing.T) {
	p := domain.Perfume{ToDecantML: 100}
	m := Aggregate(p, []domain.OrderItem{{QuantityML: 30, Gratis: true}})

	nearlyEqual(t, "usedML", m.UsedML, 30)
	nearlyEqual(t, "remainingML", m.RemainingML, 70)
	if m.PaidCount != 0 {
		t.Fatalf("paidCount = %d, want 0", m.PaidCount)
	}
	nearlyEqual(t, "grossSales", m.GrossSales, 0)
}

func TestAggregate_BalanceAgainstPurchase(t *testing.T) {
	p := domain.Perfume{ToDecantML: 100, PurchasePrice: 200}
	items := []domain.OrderItem{{QuantityML: 10, PricePerML: 2}}

	m := Aggregate(p, items)

	// 20 + 4 vial - 200 purchase - 3 handling
	nearlyEqual(t, "balance", m.Balance, -179)
	if m.BalanceBand != BandLoss {
		t.Fatalf("balanceBand = %s, want %s", m.BalanceBand, BandLoss)
	}
}

func TestAggregate_NoSalesIsNeutral(t *testing.T) {
	m := Aggregate(domain.Perfume{ToDecantML: 60}, nil)
	nearlyEqual(t, "balance", m.Balance, 0)
	if m.BalanceBand != BandNeutral {
		t.Fatalf("balanceBand = %s, want %s", m.BalanceBand, BandNeutral)
	}
	if m.StockBand != BandHealthy {
		t.Fatalf("stockBand = %s, want %s", m.StockBand, BandHealthy)
	}
}

func TestAggregate_StockBands(t *testing.T) {
	cases := []struct {
		remaining float64
		want      string
	}{
		{51, BandHealthy},
		{50, BandLow},
		{21, BandLow},
		{20, BandCritical},
		{0, BandCritical},
	}
	for _, c := range cases {
		m := Aggregate(domain.Perfume{ToDecantML: c.remaining}, nil)
		if m.StockBand != c.want {
			t.Fatalf("remaining %.0f: band = %s, want %s", c.remaining, m.StockBand, c.want)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	p := domain.Perfume{ToDecantML: 100, PurchasePrice: 50}
	items := []domain.OrderItem{
		{QuantityML: 5, PricePerML: 2},
		{QuantityML: 10, Gratis: true},
	}

	first := Aggregate(p, items)
	second := Aggregate(p, items)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate is not idempotent: %+v vs %+v", first, second)
	}
}

func TestAggregate_ToleratesDanglingItems(t *testing.T) {
	// Items may outlive their perfume; aggregation over a zero-value perfume
	// record must still compute.
	m := Aggregate(domain.Perfume{}, []domain.OrderItem{{QuantityML: 5, PricePerML: 2}})
	nearlyEqual(t, "remainingML", m.RemainingML, 0)
	nearlyEqual(t, "grossSales", m.GrossSales, 14)
}
