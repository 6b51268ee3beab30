package services

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) History(ctx context.Context, cid string) ([]domain.OrderSummary, error) {
	return s.Orders.ListByCustomer(ctx, cid)
}

// Detail totals the order from its own line snapshots, never from the live catalog.
func (s *OrderService) Detail(ctx context.Context, orderNo int64) (domain.OrderDetail, error) {
	o, lines, err := s.Orders.Get(ctx, orderNo)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return domain.OrderDetail{Order: o, Lines: lines, Total: total.Round(2)}, nil
}
