package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func seedCatalog(t *testing.T, s *store) {
	t.Helper()
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 10)
	s.product(t, "p2", "Mouse", "Electronics", "29.99", 50)
	s.product(t, "p3", "Gaming Laptop", "Electronics", "1499.00", 2)
	s.product(t, "p4", "Desk Lamp", "Home", "19.50", 0)
}

func TestSearchMatchesEveryKeyword(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()
	a := customer("c1", 1)

	got, err := s.catalog.Search(ctx, a, "laptop")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Gaming Laptop", got[0].Name)
	assert.Equal(t, "Laptop", got[1].Name)

	got, err = s.catalog.Search(ctx, a, "LAPTOP gaming")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)

	// category text matches too
	got, err = s.catalog.Search(ctx, a, "home")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Desk Lamp", got[0].Name)

	got, err = s.catalog.Search(ctx, a, "laptop lamp")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, 4, s.count(t, "searches"))
}

func TestSearchBlankQueryIsNotRecorded(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)

	got, err := s.catalog.Search(context.Background(), customer("c1", 1), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, s.count(t, "searches"))
}

func TestResolveSkipsUnknownIDs(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)

	got, err := s.catalog.Resolve(context.Background(), []string{"p2", "zz", "p1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Laptop", got[0].Name)
	assert.Equal(t, "Mouse", got[1].Name)

	got, err = s.catalog.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestViewProductRecordsView(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	p, err := s.catalog.ViewProduct(ctx, customer("c1", 1), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name)
	assert.Equal(t, "29.99", p.Price.StringFixed(2))
	assert.Equal(t, 1, s.count(t, "viewed_products"))

	_, err = s.catalog.ViewProduct(ctx, customer("c1", 1), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, s.count(t, "viewed_products"))
}

func TestSetPrice(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	assert.ErrorIs(t, s.catalog.SetPrice(ctx, "p1", decimal.Zero), domain.ErrInvalidPrice)
	assert.ErrorIs(t, s.catalog.SetPrice(ctx, "p1", decimal.RequireFromString("-1")), domain.ErrInvalidInput)
	// rounds to zero cents
	assert.ErrorIs(t, s.catalog.SetPrice(ctx, "p1", decimal.RequireFromString("0.004")), domain.ErrInvalidPrice)
	assert.ErrorIs(t, s.catalog.SetPrice(ctx, "nope", decimal.RequireFromString("5")), domain.ErrProductNotFound)

	require.NoError(t, s.catalog.SetPrice(ctx, "p1", decimal.RequireFromString("899.499")))
	p, err := s.catalog.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "899.50", p.Price.StringFixed(2))
}

func TestSetStock(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	assert.ErrorIs(t, s.catalog.SetStock(ctx, "p1", -1), domain.ErrInvalidStock)
	assert.ErrorIs(t, s.catalog.SetStock(ctx, "nope", 3), domain.ErrProductNotFound)

	require.NoError(t, s.catalog.SetStock(ctx, "p1", 0))
	assert.Equal(t, 0, s.stock(t, "p1"))
	require.NoError(t, s.catalog.SetStock(ctx, "p1", 7))
	assert.Equal(t, 7, s.stock(t, "p1"))
}

func TestListCategories(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)

	cats, err := s.catalog.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, domain.Category{Name: "Electronics", Products: 3}, cats[0])
	assert.Equal(t, domain.Category{Name: "Home", Products: 1}, cats[1])
}

func TestCheckAvailability(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "A", "Misc", "1.00", 5)
	s.product(t, "p2", "B", "Misc", "1.00", 4)
	s.product(t, "p3", "C", "Misc", "1.00", 0)
	ctx := context.Background()

	tests := []struct {
		id     string
		status string
		qty    int
	}{
		{"p1", "IN_STOCK", 5},
		{"p2", "LOW_STOCK", 4},
		{"p3", "OUT_OF_STOCK", 0},
	}
	for _, tc := range tests {
		av, err := s.inventory.CheckAvailability(ctx, tc.id)
		require.NoError(t, err)
		assert.Equal(t, domain.Availability{Status: tc.status, Qty: tc.qty}, av, tc.id)
	}

	_, err := s.inventory.CheckAvailability(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	rows, err := s.inventory.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
