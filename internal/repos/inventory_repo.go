package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

type InventoryRepo struct{ db Queryer }

func NewInventoryRepo(db Queryer) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by the admin inventory page
type InventoryRow struct {
	ProductID string `db:"pid"`
	Name      string `db:"name"`
	Category  string `db:"category"`
	Qty       int    `db:"stock_count"`
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT pid, name, category, stock_count
		FROM products
		ORDER BY name, pid
	`)
	return rows, err
}

// Qty returns current stock for a product.
func (r *InventoryRepo) Qty(ctx context.Context, productID string) (int, error) {
	var qty int
	err := r.db.GetContext(ctx, &qty, `SELECT stock_count FROM products WHERE pid = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrProductNotFound
	}
	return qty, err
}

// Decrement subtracts "by" units only if enough stock exists.
func (r *InventoryRepo) Decrement(ctx context.Context, productID string, by int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock_count = stock_count - ?
		WHERE pid = ? AND stock_count >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("decrement %s by %d: %w", productID, by, domain.ErrInsufficientStock)
	}
	return nil
}

// SetQty overwrites the stock count; this is the only way stock goes up.
func (r *InventoryRepo) SetQty(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET stock_count = ? WHERE pid = ?`, qty, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
