package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	ErrInvalidPrice    = fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	ErrInvalidStock    = fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	ErrInvalidAddress  = fmt.Errorf("%w: shipping address is required", ErrInvalidInput)

	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrNotInCart       = fmt.Errorf("product not in cart: %w", ErrNotFound)

	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTransactionFailure = errors.New("transaction failed")

	ErrBadCredentials = errors.New("invalid user id or password")
	ErrEmailTaken     = errors.New("email already registered")
)

type Shortfall struct {
	ProductID string
	Name      string
	Wanted    int
	Available int
}

// InsufficientStockError lists every line that cannot be filled, not just the first.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: need %d, only %d available", s.Name, s.Wanted, s.Available))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
