package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestCartAddAccumulates(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 10)
	ctx := context.Background()
	a := customer("c1", 1)

	qty, err := s.cart.Add(ctx, a, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	qty, err = s.cart.Add(ctx, a, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	// no stock check on add
	qty, err = s.cart.Add(ctx, a, "p1", 50)
	require.NoError(t, err)
	assert.Equal(t, 55, qty)
}

func TestCartAddRejects(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 10)
	ctx := context.Background()
	a := customer("c1", 1)

	_, err := s.cart.Add(ctx, a, "p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = s.cart.Add(ctx, a, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 0, s.count(t, "cart"))
}

func TestCartSessionsAreSeparate(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 10)
	ctx := context.Background()

	_, err := s.cart.Add(ctx, customer("c1", 1), "p1", 2)
	require.NoError(t, err)

	cart, err := s.cart.View(ctx, customer("c1", 2))
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCartSetQuantity(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 3)
	s.product(t, "p2", "Mouse", "Electronics", "29.99", 50)
	ctx := context.Background()
	a := customer("c1", 1)

	err := s.cart.SetQuantity(ctx, a, "p1", 2)
	assert.ErrorIs(t, err, domain.ErrNotInCart)

	_, err = s.cart.Add(ctx, a, "p1", 1)
	require.NoError(t, err)

	assert.ErrorIs(t, s.cart.SetQuantity(ctx, a, "p1", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, s.cart.SetQuantity(ctx, a, "p1", -1), domain.ErrInvalidQuantity)

	err = s.cart.SetQuantity(ctx, a, "p1", 4)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, []domain.Shortfall{{ProductID: "p1", Name: "Laptop", Wanted: 4, Available: 3}}, ise.Shortfalls)

	require.NoError(t, s.cart.SetQuantity(ctx, a, "p1", 3))
	cart, err := s.cart.View(ctx, a)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Qty)
}

func TestCartRemove(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 3)
	ctx := context.Background()
	a := customer("c1", 1)

	assert.ErrorIs(t, s.cart.Remove(ctx, a, "p1"), domain.ErrNotInCart)

	_, err := s.cart.Add(ctx, a, "p1", 1)
	require.NoError(t, err)
	require.NoError(t, s.cart.Remove(ctx, a, "p1"))
	assert.Equal(t, 0, s.count(t, "cart"))
}

func TestCartViewLivePricesByName(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Zip Drive", "Electronics", "20.00", 3)
	s.product(t, "p2", "Antenna", "Electronics", "5.50", 3)
	ctx := context.Background()
	a := customer("c1", 1)

	_, err := s.cart.Add(ctx, a, "p1", 2)
	require.NoError(t, err)
	_, err = s.cart.Add(ctx, a, "p2", 1)
	require.NoError(t, err)

	cart, err := s.cart.View(ctx, a)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "Antenna", cart.Lines[0].Name)
	assert.Equal(t, "Zip Drive", cart.Lines[1].Name)
	assert.Equal(t, "40", cart.Lines[1].Subtotal().String())
	assert.Equal(t, "45.50", cart.Total.StringFixed(2))

	_, err = s.db.Exec(`UPDATE products SET price = 25 WHERE pid = 'p1'`)
	require.NoError(t, err)
	cart, err = s.cart.View(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "55.50", cart.Total.StringFixed(2))
}
