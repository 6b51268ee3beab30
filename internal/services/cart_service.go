package services

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty units on the actor's cart without checking stock; checkout enforces it.
func (s *CartService) Add(ctx context.Context, a domain.Actor, productID string, qty int) (int, error) {
	if qty < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	if _, err := s.Prods.Get(ctx, productID); err != nil {
		return 0, err
	}
	return s.Carts.Add(ctx, a.CustomerID, a.SessionNo, productID, qty)
}

// SetQuantity checks live stock at edit time; checkout checks again at commit time.
func (s *CartService) SetQuantity(ctx context.Context, a domain.Actor, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if _, ok, err := s.Carts.Qty(ctx, a.CustomerID, a.SessionNo, productID); err != nil {
		return err
	} else if !ok {
		return domain.ErrNotInCart
	}
	p, err := s.Prods.Get(ctx, productID)
	if err != nil {
		return err
	}
	if qty > p.Stock {
		return &domain.InsufficientStockError{Shortfalls: []domain.Shortfall{
			{ProductID: p.ID, Name: p.Name, Wanted: qty, Available: p.Stock},
		}}
	}
	ok, err := s.Carts.SetQty(ctx, a.CustomerID, a.SessionNo, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, a domain.Actor, productID string) error {
	ok, err := s.Carts.Remove(ctx, a.CustomerID, a.SessionNo, productID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotInCart
	}
	return nil
}

// View lists the cart at live catalog prices.
func (s *CartService) View(ctx context.Context, a domain.Actor) (domain.Cart, error) {
	lines, err := s.Carts.Lines(ctx, a.CustomerID, a.SessionNo)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{Lines: lines, Total: sumLines(lines)}, nil
}

func sumLines(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}
