package repos

import (
	"context"

	"storefront/internal/domain"
)

type CategoryRepo struct{ db Queryer }

func NewCategoryRepo(db Queryer) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns the categories present in the catalog with how many products each holds.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT category AS name, COUNT(*) AS products
  FROM products
  WHERE category <> ''
  GROUP BY category
  ORDER BY category
`)
	return out, err
}
