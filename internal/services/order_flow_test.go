package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"decantly/internal/domain"
	"decantly/internal/repos"
)

func testServices(t *testing.T) (*OrderService, *PerfumeService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	orderRepo := repos.NewOrderRepo(db)
	perfumeRepo := repos.NewPerfumeRepo(db)
	return NewOrderService(orderRepo, perfumeRepo, "BLIK: 000 000 000"),
		NewPerfumeService(perfumeRepo, orderRepo)
}

func mustPerfume(t *testing.T, svc *PerfumeService, brand, name string, toDecant, pricePerML, purchase float64) domain.Perfume {
	t.Helper()
	p, err := svc.Create(PerfumeInput{
		Brand:         brand,
		Name:          name,
		ToDecantML:    toDecant,
		PricePerML:    pricePerML,
		PurchasePrice: purchase,
	})
	if err != nil {
		t.Fatalf("create perfume: %v", err)
	}
	return p
}

func TestOrderCreate_TotalAndPersistence(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "Dior", "Sauvage", 100, 2.0, 300)

	o, err := orders.Create(OrderInput{
		Buyer:    "anna_k",
		Shipping: domain.ShipInPost,
		Items:    []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	// 5 ml x 2.00 + 12.00 shipping + one 4.00 vial
	if o.Total != 26.00 {
		t.Fatalf("total = %v, want 26.00", o.Total)
	}
	if o.ShippingCost != 12.00 {
		t.Fatalf("shipping cost = %v, want 12.00", o.ShippingCost)
	}

	got, items, err := orders.Get(o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Total != o.Total || got.Buyer != "anna_k" {
		t.Fatalf("stored order = %+v", got)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].PartialSum != 10.00 || items[0].PricePerML != 2.0 {
		t.Fatalf("stored item = %+v", items[0])
	}
}

func TestOrderCreate_GratisConsumesButEarnsNothing(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "Dior", "Sauvage", 100, 2.5, 0)

	o, err := orders.Create(OrderInput{
		Buyer:    "tomek",
		Shipping: domain.ShipDPD,
		Items: []ItemInput{
			{PerfumeID: p.ID, QuantityML: 10},
			{PerfumeID: p.ID, QuantityML: 3, Gratis: true},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	// 10 x 2.50 + 10.00 shipping + one vial; the gratis line adds nothing.
	if o.Total != 39.00 {
		t.Fatalf("total = %v, want 39.00", o.Total)
	}

	m, err := perfumes.Metrics(p.ID)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.UsedML != 13 {
		t.Fatalf("used = %v, want 13 (gratis still consumes)", m.UsedML)
	}
	if m.PaidCount != 1 {
		t.Fatalf("paid count = %d, want 1", m.PaidCount)
	}
}

func TestOrderCreate_ValidationGateOrder(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Nomade", 50, 3.0, 0)
	free := mustPerfume(t, perfumes, "", "Sampler", 50, 0, 0)

	cases := []struct {
		name string
		in   OrderInput
		want error
	}{
		{"no items wins over missing buyer", OrderInput{}, ErrNoItems},
		{"all gratis", OrderInput{
			Buyer: "x",
			Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5, Gratis: true}},
		}, ErrNoPaidItem},
		{"zero-price perfume is not payable", OrderInput{
			Buyer: "x",
			Items: []ItemInput{{PerfumeID: free.ID, QuantityML: 5}},
		}, ErrNoPaidItem},
		{"missing buyer checked last", OrderInput{
			Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
		}, ErrNoBuyer},
		{"bad email", OrderInput{
			Buyer: "x",
			Email: "not-an-email",
			Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
		}, ErrBadEmail},
		{"non-standard volume", OrderInput{
			Buyer: "x",
			Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 7}},
		}, ErrBadVolume},
		{"unknown perfume", OrderInput{
			Buyer: "x",
			Items: []ItemInput{{PerfumeID: "nope", QuantityML: 5}},
		}, ErrUnknownPerfume},
	}
	for _, tc := range cases {
		if _, err := orders.Create(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	// A rejected create leaves nothing behind.
	views, err := orders.List(OrderListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("orders persisted after rejections: %d", len(views))
	}
}

func TestOrderCreate_WholeBottleSkipsVolumeCheck(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Layton", 100, 4.0, 0)

	o, err := orders.Create(OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 73, WholeBottle: true}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 73 x 4.00 + one vial, no shipping
	if o.Total != 296.00 {
		t.Fatalf("total = %v, want 296.00", o.Total)
	}
}

func TestOrderUpdate_ReplacesItemSet(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Aventus", 100, 10.0, 0)

	o, err := orders.Create(OrderInput{
		Buyer: "x",
		Items: []ItemInput{
			{PerfumeID: p.ID, QuantityML: 5},
			{PerfumeID: p.ID, QuantityML: 10},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd, err := orders.Update(o.ID, OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 3}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	// 3 x 10.00 + one vial
	if upd.Total != 34.00 {
		t.Fatalf("total after edit = %v, want 34.00", upd.Total)
	}

	_, items, err := orders.Get(o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 1 || items[0].QuantityML != 3 {
		t.Fatalf("items after edit = %+v, want the single 3 ml line", items)
	}
}

func TestOrderUpdate_UnknownID(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Tobacco Vanille", 50, 8.0, 0)

	_, err := orders.Update("missing", OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOrderDelete_RemovesItems(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Erba Pura", 100, 3.0, 0)

	o, err := orders.Create(OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 10}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := orders.Delete(o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := orders.Delete(o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	m, err := perfumes.Metrics(p.ID)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.UsedML != 0 {
		t.Fatalf("used after delete = %v, want 0", m.UsedML)
	}
}

func TestOrderSave_SaleDateStamping(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Ani", 50, 5.0, 0)
	today := time.Now().Format(dateLayout)

	base := OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
	}

	// Unpaid: no sale date, whatever the input says.
	in := base
	in.SaleDate = "2026-01-15"
	o, err := orders.Create(in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.SaleDate != "" {
		t.Fatalf("unpaid sale date = %q, want empty", o.SaleDate)
	}

	// Paid with no date: stamped today.
	in = base
	in.ReceivedMoney = true
	o, err = orders.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.SaleDate != today {
		t.Fatalf("sale date = %q, want %q", o.SaleDate, today)
	}

	// Paid with an explicit date: kept as given.
	in.SaleDate = "2026-02-01"
	o, err = orders.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.SaleDate != "2026-02-01" {
		t.Fatalf("sale date = %q, want 2026-02-01", o.SaleDate)
	}

	// Garbage date is rejected.
	in.SaleDate = "01.02.2026"
	if _, err := orders.Update(o.ID, in); !errors.Is(err, ErrBadDate) {
		t.Fatalf("err = %v, want ErrBadDate", err)
	}
}

func TestOrderSave_ConfirmationDateStamping(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "", "Ombre Nomade", 50, 12.0, 0)
	today := time.Now().Format(dateLayout)

	base := OrderInput{
		Buyer: "x",
		Items: []ItemInput{{PerfumeID: p.ID, QuantityML: 5}},
	}
	o, err := orders.Create(base)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ConfirmationDate != "" {
		t.Fatalf("confirmation date = %q before the flag", o.ConfirmationDate)
	}

	in := base
	in.ConfirmationObtained = true
	o, err = orders.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.ConfirmationDate != today {
		t.Fatalf("confirmation date = %q, want %q", o.ConfirmationDate, today)
	}

	// Re-saving keeps the original stamp; clearing the flag clears the date.
	o, err = orders.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.ConfirmationDate != today {
		t.Fatalf("confirmation date lost on re-save: %q", o.ConfirmationDate)
	}
	in.ConfirmationObtained = false
	o, err = orders.Update(o.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.ConfirmationDate != "" {
		t.Fatalf("confirmation date = %q after clearing the flag", o.ConfirmationDate)
	}
}

func TestOrderList_SummariesAndStatusFilter(t *testing.T) {
	orders, perfumes := testServices(t)
	sauvage := mustPerfume(t, perfumes, "Dior", "Sauvage", 100, 2.0, 0)
	layton := mustPerfume(t, perfumes, "PDM", "Layton", 100, 3.0, 0)

	_, err := orders.Create(OrderInput{
		Buyer: "kasia",
		Items: []ItemInput{
			{PerfumeID: sauvage.ID, QuantityML: 5},
			{PerfumeID: layton.ID, QuantityML: 3, Gratis: true},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := orders.List(OrderListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if v.Paid != "Dior Sauvage (5 ml)" {
		t.Fatalf("paid summary = %q", v.Paid)
	}
	if v.Gratis != "PDM Layton" {
		t.Fatalf("gratis summary = %q", v.Gratis)
	}
	if v.Status != domain.StatusSendMessage {
		t.Fatalf("status = %q, want %q", v.Status, domain.StatusSendMessage)
	}

	// The status filter is applied to the derived status.
	views, err = orders.List(OrderListFilter{Status: domain.StatusComplete})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("COMPLETE filter matched %d fresh orders", len(views))
	}

	// Deleting the perfume leaves the order readable with a placeholder name.
	if err := perfumes.Delete(sauvage.ID); err != nil {
		t.Fatalf("delete perfume: %v", err)
	}
	views, err = orders.List(OrderListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(views[0].Paid, "(usunięte perfumy)") {
		t.Fatalf("paid summary after perfume delete = %q", views[0].Paid)
	}
}

func TestOrderQuote(t *testing.T) {
	orders, perfumes := testServices(t)
	p := mustPerfume(t, perfumes, "Dior", "Sauvage", 100, 2.0, 0)

	q, msg, err := orders.Quote([]ItemInput{{PerfumeID: p.ID, QuantityML: 5}}, domain.ShipInPost)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Total != 26.00 {
		t.Fatalf("quote total = %v, want 26.00", q.Total)
	}
	if !strings.Contains(msg, "Razem: 26zł") {
		t.Fatalf("message missing total:\n%s", msg)
	}
	if !strings.Contains(msg, "BLIK: 000 000 000") {
		t.Fatalf("message missing payment note:\n%s", msg)
	}

	if _, _, err := orders.Quote(nil, ""); !errors.Is(err, ErrNoItems) {
		t.Fatalf("empty quote err = %v, want ErrNoItems", err)
	}
}
