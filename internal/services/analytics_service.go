package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const reportWindow = 7 * 24 * time.Hour

type AnalyticsService struct {
	Repo *repos.AnalyticsRepo
}

func NewAnalyticsService(repo *repos.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

// WeeklySalesReport aggregates orders dated within [now-7d, now]. The
// sub-queries are independent and may see slightly different snapshots.
func (s *AnalyticsService) WeeklySalesReport(ctx context.Context, now time.Time) (domain.SalesReport, error) {
	rep := domain.SalesReport{
		From: now.Add(-reportWindow).UTC().Format(time.RFC3339),
		To:   now.UTC().Format(time.RFC3339),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rep.Orders, err = s.Repo.CountOrders(ctx, rep.From, rep.To)
		return err
	})
	g.Go(func() (err error) {
		rep.Products, err = s.Repo.CountProducts(ctx, rep.From, rep.To)
		return err
	})
	g.Go(func() (err error) {
		rep.Customers, err = s.Repo.CountCustomers(ctx, rep.From, rep.To)
		return err
	})
	g.Go(func() (err error) {
		rep.Revenue, err = s.Repo.Revenue(ctx, rep.From, rep.To)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SalesReport{}, err
	}

	rep.AveragePerCustomer = decimal.Zero
	if rep.Customers > 0 {
		rep.AveragePerCustomer = rep.Revenue.DivRound(decimal.NewFromInt(int64(rep.Customers)), 2)
	}
	return rep, nil
}

func (s *AnalyticsService) TopByOrders(ctx context.Context, n int) ([]domain.RankedProduct, error) {
	if n < 1 {
		return nil, domain.ErrInvalidInput
	}
	all, err := s.Repo.OrderCounts(ctx)
	if err != nil {
		return nil, err
	}
	return RankWithTies(all, n), nil
}

func (s *AnalyticsService) TopByViews(ctx context.Context, n int) ([]domain.RankedProduct, error) {
	if n < 1 {
		return nil, domain.ErrInvalidInput
	}
	all, err := s.Repo.ViewCounts(ctx)
	if err != nil {
		return nil, err
	}
	return RankWithTies(all, n), nil
}

// RankWithTies sorts by metric desc then name asc and keeps every product whose
// metric reaches the one at position n. Ties at the cutoff make the result longer than n.
func RankWithTies(items []domain.RankedProduct, n int) []domain.RankedProduct {
	out := make([]domain.RankedProduct, 0, len(items))
	for _, it := range items {
		if it.Metric > 0 {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Metric != out[j].Metric {
			return out[i].Metric > out[j].Metric
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProductID < out[j].ProductID
	})
	if n < 1 {
		return out[:0]
	}
	if len(out) < n {
		return out
	}
	threshold := out[n-1].Metric
	cut := n
	for cut < len(out) && out[cut].Metric >= threshold {
		cut++
	}
	return out[:cut]
}
