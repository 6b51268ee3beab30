package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type OrderRepo struct{ db Queryer }

func NewOrderRepo(db Queryer) *OrderRepo { return &OrderRepo{db: db} }

// NextNo bumps the order counter. Run it outside the checkout transaction so a
// number handed out is never handed out again, even if that checkout rolls back.
func (r *OrderRepo) NextNo(ctx context.Context) (int64, error) {
	var no int64
	err := r.db.GetContext(ctx, &no, `
		UPDATE counters SET value = value + 1 WHERE name = 'order' RETURNING value
	`)
	return no, err
}

// Create inserts a new order header.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO orders(ono, cid, session_no, odate, shipping_address)
	  VALUES(?, ?, ?, ?, ?)
	`, o.No, o.Customer, o.SessionNo, o.Date, o.Address)
	return err
}

// InsertLine inserts a single line with its unit price snapshot.
func (r *OrderRepo) InsertLine(ctx context.Context, orderNo int64, lineNo int, productID string, qty int, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO orderlines(ono, line_no, pid, qty, uprice)
	  VALUES(?, ?, ?, ?, ?)
	`, orderNo, lineNo, productID, qty, price)
	return err
}

// ListByCustomer returns a customer's orders, newest date first, then newest number.
func (r *OrderRepo) ListByCustomer(ctx context.Context, cid string) ([]domain.OrderSummary, error) {
	out := []domain.OrderSummary{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT o.ono, o.cid, o.session_no, o.odate, o.shipping_address,
		       COUNT(ol.line_no) AS lines,
		       ROUND(COALESCE(SUM(ol.qty * ol.uprice), 0), 2) AS total
		FROM orders o
		LEFT JOIN orderlines ol ON ol.ono = o.ono
		WHERE o.cid = ?
		GROUP BY o.ono
		ORDER BY o.odate DESC, o.ono DESC
	`, cid)
	return out, err
}

func (r *OrderRepo) Get(ctx context.Context, orderNo int64) (domain.Order, []domain.OrderLine, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, `
		SELECT ono, cid, session_no, odate, shipping_address
		FROM orders
		WHERE ono = ?
	`, orderNo)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, nil, err
	}

	lines := []domain.OrderLine{}
	if err := r.db.SelectContext(ctx, &lines, `
		SELECT ol.line_no, ol.pid, p.name, p.category, ol.qty, ol.uprice
		FROM orderlines ol
		JOIN products p ON p.pid = ol.pid
		WHERE ol.ono = ?
		ORDER BY ol.line_no
	`, orderNo); err != nil {
		return domain.Order{}, nil, err
	}

	return o, lines, nil
}
