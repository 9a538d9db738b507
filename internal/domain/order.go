package domain

import "strings"

// Order is one customer transaction. The workflow booleans are independent
// checkboxes; the actionable step is derived, see WorkflowStatus.
type Order struct {
	ID string `db:"id" json:"id"`

	// Buyer is the primary display name (marketplace handle). The structured
	// fields are optional extras.
	Buyer     string `db:"buyer" json:"buyer"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`

	Shipping     string  `db:"shipping" json:"shipping"` // method key, "" = none chosen
	ShippingCost float64 `db:"shipping_cost" json:"shipping_cost"`
	Total        float64 `db:"total" json:"total"`
	Notes        string  `db:"notes" json:"notes"`

	SentMessage          bool `db:"sent_message" json:"sent_message"`
	ReceivedMoney        bool `db:"received_money" json:"received_money"`
	GeneratedLabel       bool `db:"generated_label" json:"generated_label"`
	Packed               bool `db:"packed" json:"packed"`
	Sent                 bool `db:"sent" json:"sent"`
	ConfirmationObtained bool `db:"confirmation_obtained" json:"confirmation_obtained"`

	SaleDate         string `db:"sale_date" json:"sale_date"`                 // YYYY-MM-DD, "" = none
	ConfirmationDate string `db:"confirmation_date" json:"confirmation_date"` // stamped on confirmation

	IsSplit bool `db:"is_split" json:"is_split"`

	CreatedAt string `db:"created_at" json:"created_at"`
}

// HasFullBuyerData reports whether the buyer record is complete enough to
// close the order out: structured name plus at least one way to reach them.
func (o Order) HasFullBuyerData() bool {
	if strings.TrimSpace(o.FirstName) == "" || strings.TrimSpace(o.LastName) == "" {
		return false
	}
	return strings.TrimSpace(o.Email) != "" || strings.TrimSpace(o.Phone) != ""
}

// OrderItem is one perfume allocation inside an order. Items are only ever
// written as part of an order save and replaced wholesale on edit.
type OrderItem struct {
	ID        string `db:"id" json:"id"`
	OrderID   string `db:"order_id" json:"order_id"`
	PerfumeID string `db:"perfume_id" json:"perfume_id"`

	QuantityML float64 `db:"quantity_ml" json:"quantity_ml"`
	PricePerML float64 `db:"price_per_ml" json:"price_per_ml"` // zero when gratis
	PartialSum float64 `db:"partial_sum" json:"partial_sum"`   // quantity_ml * price_per_ml

	Gratis      bool `db:"gratis" json:"gratis"`
	WholeBottle bool `db:"whole_bottle" json:"whole_bottle"`
	Split       bool `db:"split" json:"split"`
}
