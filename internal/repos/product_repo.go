package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductRepo struct{ db Queryer }

func NewProductRepo(db Queryer) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `pid, name, category, price, stock_count, descr`

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE pid = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, err
}

// List resolves ids to products ordered by name; unknown ids are skipped.
func (r *ProductRepo) List(ctx context.Context, ids []string) ([]domain.Product, error) {
	out := []domain.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE pid IN (?) ORDER BY name, pid`, ids)
	if err != nil {
		return nil, err
	}
	err = r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

// SearchIDs matches every keyword (AND) against name, description or category.
func (r *ProductRepo) SearchIDs(ctx context.Context, keywords []string) ([]string, error) {
	where := []string{}
	args := []any{}
	for _, kw := range keywords {
		like := "%" + strings.ToLower(kw) + "%"
		where = append(where, `(LOWER(name) LIKE ? OR LOWER(descr) LIKE ? OR LOWER(category) LIKE ?)`)
		args = append(args, like, like, like)
	}
	if len(where) == 0 {
		return []string{}, nil
	}
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids, `
	  SELECT pid FROM products
	  WHERE `+strings.Join(where, " AND ")+`
	  ORDER BY name, pid`, args...)
	return ids, err
}

func (r *ProductRepo) SetPrice(ctx context.Context, id string, price decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET price = ? WHERE pid = ?`, price, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
