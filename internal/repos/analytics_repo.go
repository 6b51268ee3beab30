package repos

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// AnalyticsRepo is read-only. Each method is an independent query; callers
// combining several of them may observe different snapshots.
type AnalyticsRepo struct{ db Queryer }

func NewAnalyticsRepo(db Queryer) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

func (r *AnalyticsRepo) CountOrders(ctx context.Context, from, to string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(DISTINCT ono) FROM orders WHERE odate >= ? AND odate <= ?
	`, from, to)
	return n, err
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context, from, to string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(DISTINCT ol.pid)
		FROM orderlines ol JOIN orders o ON o.ono = ol.ono
		WHERE o.odate >= ? AND o.odate <= ?
	`, from, to)
	return n, err
}

func (r *AnalyticsRepo) CountCustomers(ctx context.Context, from, to string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(DISTINCT cid) FROM orders WHERE odate >= ? AND odate <= ?
	`, from, to)
	return n, err
}

func (r *AnalyticsRepo) Revenue(ctx context.Context, from, to string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, `
		SELECT ROUND(COALESCE(SUM(ol.qty * ol.uprice), 0), 2)
		FROM orderlines ol JOIN orders o ON o.ono = ol.ono
		WHERE o.odate >= ? AND o.odate <= ?
	`, from, to)
	return total, err
}

// OrderCounts gives, per product that was ever ordered, the number of distinct orders containing it.
func (r *AnalyticsRepo) OrderCounts(ctx context.Context) ([]domain.RankedProduct, error) {
	out := []domain.RankedProduct{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT p.pid, p.name, p.category, COUNT(DISTINCT ol.ono) AS metric
		FROM products p
		JOIN orderlines ol ON ol.pid = p.pid
		GROUP BY p.pid
	`)
	return out, err
}

// ViewCounts gives, per product that was ever viewed, its raw view count.
func (r *AnalyticsRepo) ViewCounts(ctx context.Context) ([]domain.RankedProduct, error) {
	out := []domain.RankedProduct{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT p.pid, p.name, p.category, COUNT(*) AS metric
		FROM products p
		JOIN viewed_products v ON v.pid = p.pid
		GROUP BY p.pid
	`)
	return out, err
}
