package repos

import (
	"github.com/jmoiron/sqlx"

	"decantly/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderFilter narrows List. Workflow status is derived, not stored, so the
// service layer filters on it after loading.
type OrderFilter struct {
	Buyer     string // substring, case-insensitive
	SplitOnly bool
}

const orderCols = `
  id, buyer, first_name, last_name, email, phone,
  shipping, shipping_cost, total, notes,
  sent_message, received_money, generated_label, packed, sent, confirmation_obtained,
  sale_date, confirmation_date, is_split, created_at`

func (r *OrderRepo) List(f OrderFilter) ([]domain.Order, error) {
	where := `1=1`
	args := []any{}
	if f.Buyer != "" {
		where += ` AND LOWER(buyer) LIKE ?`
		args = append(args, "%"+f.Buyer+"%")
	}
	if f.SplitOnly {
		where += ` AND is_split = 1`
	}

	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+`
	  FROM orders
	  WHERE `+where+`
	  ORDER BY datetime(created_at) DESC`, args...)
	return out, err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT id, order_id, perfume_id, quantity_ml, price_per_ml, partial_sum,
	         gratis, whole_bottle, split
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY gratis, id`, orderID)
	return items, err
}

// ItemsByPerfume is the aggregation engine's feed: every line item ever
// saved against one perfume, across all orders.
func (r *OrderRepo) ItemsByPerfume(perfumeID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT id, order_id, perfume_id, quantity_ml, price_per_ml, partial_sum,
	         gratis, whole_bottle, split
	  FROM order_items
	  WHERE perfume_id = ?`, perfumeID)
	return items, err
}

// Save writes the order header and its line items as one transaction. Any
// prior items are dropped and the new set inserted wholesale; a failure
// anywhere rolls the whole save back.
func (r *OrderRepo) Save(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
	  INSERT INTO orders(
	    id, buyer, first_name, last_name, email, phone,
	    shipping, shipping_cost, total, notes,
	    sent_message, received_money, generated_label, packed, sent, confirmation_obtained,
	    sale_date, confirmation_date, is_split, created_at
	  ) VALUES (
	    :id, :buyer, :first_name, :last_name, :email, :phone,
	    :shipping, :shipping_cost, :total, :notes,
	    :sent_message, :received_money, :generated_label, :packed, :sent, :confirmation_obtained,
	    :sale_date, :confirmation_date, :is_split, CURRENT_TIMESTAMP
	  )
	  ON CONFLICT(id) DO UPDATE SET
	    buyer = excluded.buyer, first_name = excluded.first_name,
	    last_name = excluded.last_name, email = excluded.email, phone = excluded.phone,
	    shipping = excluded.shipping, shipping_cost = excluded.shipping_cost,
	    total = excluded.total, notes = excluded.notes,
	    sent_message = excluded.sent_message, received_money = excluded.received_money,
	    generated_label = excluded.generated_label, packed = excluded.packed,
	    sent = excluded.sent, confirmation_obtained = excluded.confirmation_obtained,
	    sale_date = excluded.sale_date, confirmation_date = excluded.confirmation_date,
	    is_split = excluded.is_split`, o); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, o.ID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.NamedExec(`
		  INSERT INTO order_items(
		    id, order_id, perfume_id, quantity_ml, price_per_ml, partial_sum,
		    gratis, whole_bottle, split
		  ) VALUES (
		    :id, :order_id, :perfume_id, :quantity_ml, :price_per_ml, :partial_sum,
		    :gratis, :whole_bottle, :split
		  )`, it); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes an order and, via the FK cascade, its line items.
func (r *OrderRepo) Delete(id string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}
