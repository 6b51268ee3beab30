package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// CheckoutService turns a cart into an order. Everything after number
// allocation happens in one transaction: order, lines, stock, cart.
type CheckoutService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Now    func() time.Time
}

func NewCheckoutService(db *sqlx.DB, carts *repos.CartRepo, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{DB: db, Carts: carts, Orders: orders, Now: time.Now}
}

// Review loads the cart and runs the same checks as Checkout without writing anything.
func (s *CheckoutService) Review(ctx context.Context, a domain.Actor) (domain.Cart, error) {
	lines, err := s.Carts.Lines(ctx, a.CustomerID, a.SessionNo)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := validateLines(lines); err != nil {
		return domain.Cart{Lines: lines, Total: sumLines(lines)}, err
	}
	return domain.Cart{Lines: lines, Total: sumLines(lines)}, nil
}

func (s *CheckoutService) Checkout(ctx context.Context, a domain.Actor, address string) (domain.Receipt, error) {
	address = strings.TrimSpace(address)

	lines, err := s.Carts.Lines(ctx, a.CustomerID, a.SessionNo)
	if err != nil {
		return domain.Receipt{}, err
	}
	if err := validate(lines, address); err != nil {
		return domain.Receipt{}, err
	}

	orderNo, err := s.Orders.NextNo(ctx)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("%w: allocate order number: %w", domain.ErrTransactionFailure, err)
	}

	var receipt domain.Receipt
	err = repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		carts := repos.NewCartRepo(tx)
		orders := repos.NewOrderRepo(tx)
		inv := repos.NewInventoryRepo(tx)

		// the cart may have changed since the first read
		lines, err := carts.Lines(ctx, a.CustomerID, a.SessionNo)
		if err != nil {
			return err
		}
		if err := validate(lines, address); err != nil {
			return err
		}

		if err := orders.Create(ctx, domain.Order{
			No:        orderNo,
			Customer:  a.CustomerID,
			SessionNo: a.SessionNo,
			Date:      stamp(s.Now),
			Address:   address,
		}); err != nil {
			return fmt.Errorf("create order %d: %w", orderNo, err)
		}

		out := make([]domain.OrderLine, 0, len(lines))
		for i, l := range lines {
			lineNo := i + 1
			if err := orders.InsertLine(ctx, orderNo, lineNo, l.ProductID, l.Qty, l.Price); err != nil {
				return fmt.Errorf("insert line %d: %w", lineNo, err)
			}
			if err := inv.Decrement(ctx, l.ProductID, l.Qty); err != nil {
				return err
			}
			out = append(out, domain.OrderLine{
				LineNo: lineNo, ProductID: l.ProductID, Name: l.Name, Qty: l.Qty, UnitPrice: l.Price,
			})
		}

		if err := carts.Clear(ctx, a.CustomerID, a.SessionNo); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		receipt = domain.Receipt{OrderNo: orderNo, Total: sumLines(lines), Address: address, Lines: out}
		return nil
	})
	if err != nil {
		if rejected(err) {
			return domain.Receipt{}, err
		}
		return domain.Receipt{}, fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
	}
	return receipt, nil
}

func validate(lines []domain.CartLine, address string) error {
	if err := validateLines(lines); err != nil {
		return err
	}
	if address == "" {
		return domain.ErrInvalidAddress
	}
	return nil
}

// validateLines reports every short line at once so the caller can fix them in one pass.
func validateLines(lines []domain.CartLine) error {
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}
	var short []domain.Shortfall
	for _, l := range lines {
		if l.Qty > l.Stock {
			short = append(short, domain.Shortfall{ProductID: l.ProductID, Name: l.Name, Wanted: l.Qty, Available: l.Stock})
		}
	}
	if len(short) > 0 {
		return &domain.InsufficientStockError{Shortfalls: short}
	}
	return nil
}

// rejected reports whether err is a validation outcome rather than a store failure.
func rejected(err error) bool {
	var ise *domain.InsufficientStockError
	return errors.Is(err, domain.ErrEmptyCart) || errors.Is(err, domain.ErrInvalidInput) || errors.As(err, &ise)
}
