package repos

import (
	"unobhala/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems persists the order header and every line item in one
// transaction. Any failure rolls the whole order back.
func (r *OrderRepo) CreateWithItems(o domain.Order, items []domain.OrderItem) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO orders(customer_name, customer_phone, subtotal, delivery_fee,
	    school_amount, supplier_amount, courier_amount, total_amount, status)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.CustomerName, o.CustomerPhone, o.Subtotal, o.DeliveryFee,
		o.SchoolAmount, o.SupplierAmount, o.CourierAmount, o.TotalAmount, o.Status)
	if err != nil {
		return 0, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, quantity, price)
		  VALUES(?, ?, ?, ?)
		`, orderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, COALESCE(customer_name,'') AS customer_name,
	         COALESCE(customer_phone,'') AS customer_phone,
	         subtotal, delivery_fee, school_amount, supplier_amount,
	         courier_amount, total_amount, status, created_at
	  FROM orders WHERE id = ?
	`, id)
	return o, err
}

// GetWithStatus fetches an order only when it is in the given status.
func (r *OrderRepo) GetWithStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, COALESCE(customer_name,'') AS customer_name,
	         COALESCE(customer_phone,'') AS customer_phone,
	         subtotal, delivery_fee, school_amount, supplier_amount,
	         courier_amount, total_amount, status, created_at
	  FROM orders WHERE id = ? AND status = ?
	`, id, string(status))
	return o, err
}

// SetStatusFromPending applies the settlement transition conditionally: only
// a pending order moves. The bool reports whether a row actually changed, so
// callers can tell a replayed notification from a first delivery.
func (r *OrderRepo) SetStatusFromPending(id int64, to domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ? WHERE id = ? AND status = ?
	`, string(to), id, string(domain.OrderPending))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListLatest returns orders newest first.
func (r *OrderRepo) ListLatest() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, COALESCE(customer_name,'') AS customer_name,
	         COALESCE(customer_phone,'') AS customer_phone,
	         subtotal, delivery_fee, school_amount, supplier_amount,
	         courier_amount, total_amount, status, created_at
	  FROM orders ORDER BY id DESC
	`)
	return out, err
}

// ItemView joins line items with their catalog names for the back-office.
type ItemView struct {
	Name     string  `db:"name"`
	Quantity int     `db:"quantity"`
	Price    float64 `db:"price"`
}

func (r *OrderRepo) Items(orderID int64) ([]ItemView, error) {
	var out []ItemView
	err := r.db.Select(&out, `
	  SELECT p.name, oi.quantity, oi.price
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	`, orderID)
	return out, err
}

func (r *OrderRepo) ItemCount(orderID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM order_items WHERE order_id = ?`, orderID)
	return n, err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// PaidRevenue sums total_amount over settled orders.
func (r *OrderRepo) PaidRevenue() (float64, error) {
	var v float64
	err := r.db.Get(&v, `
	  SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ?
	`, string(domain.OrderPaid))
	return v, err
}
