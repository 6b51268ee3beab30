package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Inv      *repos.InventoryRepo
	Activity *repos.ActivityRepo
	Now      func() time.Time
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, inv *repos.InventoryRepo, activity *repos.ActivityRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Inv: inv, Activity: activity, Now: time.Now}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

// Resolve turns candidate ids from a search into product records.
func (s *CatalogService) Resolve(ctx context.Context, ids []string) ([]domain.Product, error) {
	return s.Prods.List(ctx, ids)
}

// Search records the query against the actor's session, then matches every keyword.
func (s *CatalogService) Search(ctx context.Context, a domain.Actor, query string) ([]domain.Product, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return []domain.Product{}, nil
	}
	if err := s.Activity.RecordSearch(ctx, a.CustomerID, a.SessionNo, stamp(s.Now), query); err != nil {
		applog.Error(nil, "search.record.fail", err, map[string]any{"cid": a.CustomerID})
	}
	ids, err := s.Prods.SearchIDs(ctx, keywords)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, ids)
}

// ViewProduct returns the product and counts a view for the top-by-views ranking.
func (s *CatalogService) ViewProduct(ctx context.Context, a domain.Actor, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Activity.RecordView(ctx, a.CustomerID, a.SessionNo, stamp(s.Now), p.ID); err != nil {
		applog.Error(nil, "view.record.fail", err, map[string]any{"cid": a.CustomerID, "pid": p.ID})
	}
	return p, nil
}

// SetPrice overwrites the list price. Existing order lines keep their own snapshot.
func (s *CatalogService) SetPrice(ctx context.Context, id string, price decimal.Decimal) error {
	price = price.Round(2)
	if !price.IsPositive() {
		return domain.ErrInvalidPrice
	}
	return s.Prods.SetPrice(ctx, id, price)
}

// SetStock is an absolute set, not a delta.
func (s *CatalogService) SetStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return domain.ErrInvalidStock
	}
	return s.Inv.SetQty(ctx, id, stock)
}

func stamp(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return now().UTC().Format(time.RFC3339)
}
