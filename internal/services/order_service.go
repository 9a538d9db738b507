package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"decantly/internal/domain"
	"decantly/internal/pricing"
	"decantly/internal/repos"
	"decantly/internal/validate"
)

const dateLayout = "2006-01-02"

type OrderService struct {
	Orders   *repos.OrderRepo
	Perfumes *repos.PerfumeRepo

	// PaymentNote is appended to generated buyer messages (BLIK number,
	// bank account, whatever the owner configured).
	PaymentNote string
}

func NewOrderService(orders *repos.OrderRepo, perfumes *repos.PerfumeRepo, paymentNote string) *OrderService {
	return &OrderService{Orders: orders, Perfumes: perfumes, PaymentNote: paymentNote}
}

// ItemInput is one line of an order as the form submits it. The unit price
// is never client-supplied: it is resolved from the perfume at save time
// (and forced to zero for gratis lines).
type ItemInput struct {
	PerfumeID   string  `json:"perfume_id"`
	QuantityML  float64 `json:"quantity_ml"`
	Gratis      bool    `json:"gratis"`
	WholeBottle bool    `json:"whole_bottle"`
	Split       bool    `json:"split"`
}

type OrderInput struct {
	Buyer     string `json:"buyer"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Shipping string `json:"shipping"`
	Notes    string `json:"notes"`

	SentMessage          bool `json:"sent_message"`
	ReceivedMoney        bool `json:"received_money"`
	GeneratedLabel       bool `json:"generated_label"`
	Packed               bool `json:"packed"`
	Sent                 bool `json:"sent"`
	ConfirmationObtained bool `json:"confirmation_obtained"`

	SaleDate string `json:"sale_date"` // YYYY-MM-DD, used only while ReceivedMoney
	IsSplit  bool   `json:"is_split"`

	Items []ItemInput `json:"items"`
}

// resolved pairs a stored line item with its pricing line.
type resolved struct {
	item domain.OrderItem
	line pricing.Line
}

// resolveItems turns inputs into stored line items, pulling unit prices from
// the referenced perfumes. A gratis line keeps price and subtotal at zero no
// matter what the perfume costs.
func (s *OrderService) resolveItems(orderID string, inputs []ItemInput) ([]resolved, error) {
	out := make([]resolved, 0, len(inputs))
	for _, in := range inputs {
		if in.QuantityML <= 0 {
			return nil, ErrBadVolume
		}
		if !in.WholeBottle && !domain.IsStandardVolume(in.QuantityML) {
			return nil, ErrBadVolume
		}
		p, err := s.Perfumes.Get(in.PerfumeID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPerfume, in.PerfumeID)
		}
		if err != nil {
			return nil, err
		}

		price := p.PricePerML
		if in.Gratis {
			price = 0
		}
		line := pricing.Line{QuantityML: in.QuantityML, PricePerML: price, Gratis: in.Gratis}
		out = append(out, resolved{
			item: domain.OrderItem{
				ID:          uuid.NewString(),
				OrderID:     orderID,
				PerfumeID:   p.ID,
				QuantityML:  in.QuantityML,
				PricePerML:  price,
				PartialSum:  pricing.Round2(line.Subtotal()),
				Gratis:      in.Gratis,
				WholeBottle: in.WholeBottle,
				Split:       in.Split,
			},
			line: line,
		})
	}
	return out, nil
}

// save runs the ordered validation gate, derives the total and dates and
// persists header plus items in one transaction. prev is the zero Order on
// create; on edit it supplies the previous flag state for date stamping.
func (s *OrderService) save(id string, in OrderInput, prev domain.Order) (domain.Order, error) {
	// Gate check 1: an order is at least one line item.
	if len(in.Items) == 0 {
		return domain.Order{}, ErrNoItems
	}

	rs, err := s.resolveItems(id, in.Items)
	if err != nil {
		return domain.Order{}, err
	}

	// Gate check 2: somebody has to pay something.
	payable := false
	for _, r := range rs {
		if !r.item.Gratis && r.item.PricePerML > 0 {
			payable = true
			break
		}
	}
	if !payable {
		return domain.Order{}, ErrNoPaidItem
	}

	// Gate check 3: a buyer we can address.
	buyer, ok := validate.BuyerName(in.Buyer)
	if !ok {
		return domain.Order{}, ErrNoBuyer
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Order{}, ErrBadEmail
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Order{}, ErrBadPhone
	}

	lines := make([]pricing.Line, len(rs))
	items := make([]domain.OrderItem, len(rs))
	for i, r := range rs {
		lines[i] = r.line
		items[i] = r.item
	}
	quote := pricing.Compute(lines, in.Shipping)

	today := time.Now().Format(dateLayout)

	saleDate := ""
	if in.ReceivedMoney {
		saleDate = in.SaleDate
		if saleDate == "" {
			saleDate = today
		} else if _, err := time.Parse(dateLayout, saleDate); err != nil {
			return domain.Order{}, ErrBadDate
		}
	}

	confirmationDate := ""
	if in.ConfirmationObtained {
		confirmationDate = prev.ConfirmationDate
		if confirmationDate == "" {
			confirmationDate = today // stamped on the transition to true
		}
	}

	o := domain.Order{
		ID:        id,
		Buyer:     buyer,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Phone:     phone,

		Shipping:     in.Shipping,
		ShippingCost: quote.ShippingCost,
		Total:        pricing.Round2(quote.Total),
		Notes:        in.Notes,

		SentMessage:          in.SentMessage,
		ReceivedMoney:        in.ReceivedMoney,
		GeneratedLabel:       in.GeneratedLabel,
		Packed:               in.Packed,
		Sent:                 in.Sent,
		ConfirmationObtained: in.ConfirmationObtained,

		SaleDate:         saleDate,
		ConfirmationDate: confirmationDate,
		IsSplit:          in.IsSplit,
	}

	if err := s.Orders.Save(o, items); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) Create(in OrderInput) (domain.Order, error) {
	return s.save(uuid.NewString(), in, domain.Order{})
}

// Update replaces the order and its whole line-item set. There is no
// incremental diffing on purpose; the edit form always submits everything.
func (s *OrderService) Update(id string, in OrderInput) (domain.Order, error) {
	prev, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return s.save(id, in, prev)
}

func (s *OrderService) Get(id string) (domain.Order, []domain.OrderItem, error) {
	o, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, nil, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, nil, err
	}
	items, err := s.Orders.Items(id)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (s *OrderService) Delete(id string) error {
	n, err := s.Orders.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// OrderView is one order-board row: the order plus everything the board
// derives on the fly.
type OrderView struct {
	domain.Order
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Paid        string `json:"paid"`   // "Brand Name (5 ml), ..."
	Gratis      string `json:"gratis"` // gratis items, names only
}

type OrderListFilter struct {
	repos.OrderFilter
	Status string // derived workflow status, filtered after load
}

func (s *OrderService) List(f OrderListFilter) ([]OrderView, error) {
	orders, err := s.Orders.List(f.OrderFilter)
	if err != nil {
		return nil, err
	}

	names, err := s.perfumeNames()
	if err != nil {
		return nil, err
	}

	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		status := o.WorkflowStatus()
		if f.Status != "" && status != f.Status {
			continue
		}
		items, err := s.Orders.Items(o.ID)
		if err != nil {
			return nil, err
		}
		var paid, gratis []string
		for _, it := range items {
			name := names[it.PerfumeID]
			if name == "" {
				name = "(usunięte perfumy)" // perfume deleted since the sale
			}
			if it.PricePerML > 0 {
				paid = append(paid, fmt.Sprintf("%s (%s ml)", name, trimFloat(it.QuantityML)))
			} else {
				gratis = append(gratis, name)
			}
		}
		out = append(out, OrderView{
			Order:       o,
			Status:      status,
			StatusLabel: domain.StatusLabel(status),
			Paid:        strings.Join(paid, ", "),
			Gratis:      strings.Join(gratis, ", "),
		})
	}
	return out, nil
}

// Quote prices a would-be order and renders the buyer message without
// persisting anything. The message total always equals the quote total.
func (s *OrderService) Quote(items []ItemInput, shipping string) (pricing.Quote, string, error) {
	if len(items) == 0 {
		return pricing.Quote{}, "", ErrNoItems
	}
	rs, err := s.resolveItems("", items)
	if err != nil {
		return pricing.Quote{}, "", err
	}

	names, err := s.perfumeNames()
	if err != nil {
		return pricing.Quote{}, "", err
	}

	lines := make([]pricing.Line, len(rs))
	msgLines := make([]pricing.MessageLine, len(rs))
	for i, r := range rs {
		lines[i] = r.line
		msgLines[i] = pricing.MessageLine{Line: r.line, Perfume: names[r.item.PerfumeID]}
	}
	return pricing.Compute(lines, shipping), pricing.BuyerMessage(msgLines, shipping, s.PaymentNote), nil
}

func (s *OrderService) perfumeNames() (map[string]string, error) {
	perfumes, err := s.Perfumes.List(repos.PerfumeFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(perfumes))
	for _, p := range perfumes {
		names[p.ID] = p.DisplayName()
	}
	return names, nil
}

// trimFloat prints 5 as "5" and 7.5 as "7.5".
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
