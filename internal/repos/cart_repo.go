package repos

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
)

// CartRepo stores cart lines keyed by (customer, session, product).
type CartRepo struct{ db Queryer }

func NewCartRepo(db Queryer) *CartRepo { return &CartRepo{db: db} }

// Qty returns the quantity on a line, or ok=false if there is no such line.
func (r *CartRepo) Qty(ctx context.Context, cid string, sessionNo int, productID string) (qty int, ok bool, err error) {
	err = r.db.GetContext(ctx, &qty, `
		SELECT qty FROM cart WHERE cid = ? AND session_no = ? AND pid = ?
	`, cid, sessionNo, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return qty, true, nil
}

// Add creates the line or accumulates onto it, returning the resulting quantity.
func (r *CartRepo) Add(ctx context.Context, cid string, sessionNo int, productID string, qty int) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `
		INSERT INTO cart(cid, session_no, pid, qty)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(cid, session_no, pid) DO UPDATE
		SET qty = cart.qty + excluded.qty
		RETURNING qty
	`, cid, sessionNo, productID, qty)
	return total, err
}

// SetQty overwrites an existing line; ok=false when the line does not exist.
func (r *CartRepo) SetQty(ctx context.Context, cid string, sessionNo int, productID string, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart SET qty = ? WHERE cid = ? AND session_no = ? AND pid = ?
	`, qty, cid, sessionNo, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *CartRepo) Remove(ctx context.Context, cid string, sessionNo int, productID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart WHERE cid = ? AND session_no = ? AND pid = ?
	`, cid, sessionNo, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Lines joins the cart with live catalog price and stock, ordered by product name.
func (r *CartRepo) Lines(ctx context.Context, cid string, sessionNo int) ([]domain.CartLine, error) {
	rows := []domain.CartLine{}
	err := r.db.SelectContext(ctx, &rows, `
	  SELECT c.pid, p.name, p.price, c.qty, p.stock_count
	  FROM cart c JOIN products p ON p.pid = c.pid
	  WHERE c.cid = ? AND c.session_no = ?
	  ORDER BY p.name, p.pid
	`, cid, sessionNo)
	return rows, err
}

func (r *CartRepo) Clear(ctx context.Context, cid string, sessionNo int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE cid = ? AND session_no = ?`, cid, sessionNo)
	return err
}
