package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/services"
)

func (s *store) order(t *testing.T, ono int, cid, date string, lines ...any) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO orders(ono,cid,session_no,odate,shipping_address) VALUES(?,?,1,?,'1 Loop')`, ono, cid, date)
	require.NoError(t, err)
	for i := 0; i+2 < len(lines); i += 3 {
		_, err := s.db.Exec(`INSERT INTO orderlines(ono,line_no,pid,qty,uprice) VALUES(?,?,?,?,?)`,
			ono, i/3+1, lines[i], lines[i+1], lines[i+2])
		require.NoError(t, err)
	}
}

func names(items []domain.RankedProduct) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestRankWithTies(t *testing.T) {
	items := []domain.RankedProduct{
		{ProductID: "f", Name: "Oscar", Metric: 1},
		{ProductID: "c", Name: "Mike", Metric: 3},
		{ProductID: "a", Name: "Zeta", Metric: 5},
		{ProductID: "d", Name: "Bravo", Metric: 3},
		{ProductID: "b", Name: "Alpha", Metric: 5},
		{ProductID: "e", Name: "Kilo", Metric: 3},
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"ties at cutoff widen the result", 3, []string{"Alpha", "Zeta", "Bravo", "Kilo", "Mike"}},
		{"tie inside top two", 2, []string{"Alpha", "Zeta"}},
		{"cutoff on last", 6, []string{"Alpha", "Zeta", "Bravo", "Kilo", "Mike", "Oscar"}},
		{"fewer than n", 10, []string{"Alpha", "Zeta", "Bravo", "Kilo", "Mike", "Oscar"}},
		{"n of one", 1, []string{"Alpha", "Zeta"}},
		{"non-positive n", 0, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(services.RankWithTies(items, tc.n)))
		})
	}

	assert.Empty(t, services.RankWithTies(nil, 3))
}

func TestTopByOrders(t *testing.T) {
	s := newStore(t)
	for _, p := range [][2]string{{"pa", "Zeta"}, {"pb", "Alpha"}, {"pc", "Mike"}, {"pd", "Bravo"}, {"pe", "Kilo"}, {"pf", "Oscar"}} {
		s.product(t, p[0], p[1], "Misc", "1.00", 100)
	}
	// counts: Zeta 5, Alpha 5, Mike 3, Bravo 3, Kilo 3, Oscar 1
	s.order(t, 1, "c1", "2026-10-01T00:00:00Z", "pa", 1, 1.0, "pb", 1, 1.0, "pc", 1, 1.0, "pd", 1, 1.0, "pe", 1, 1.0, "pf", 1, 1.0)
	s.order(t, 2, "c1", "2026-10-02T00:00:00Z", "pa", 1, 1.0, "pb", 1, 1.0, "pc", 1, 1.0, "pd", 1, 1.0, "pe", 1, 1.0)
	s.order(t, 3, "c2", "2026-10-03T00:00:00Z", "pa", 1, 1.0, "pb", 1, 1.0, "pc", 1, 1.0, "pd", 1, 1.0, "pe", 1, 1.0)
	s.order(t, 4, "c2", "2026-10-04T00:00:00Z", "pa", 2, 1.0, "pb", 1, 1.0)
	s.order(t, 5, "c3", "2026-10-05T00:00:00Z", "pa", 1, 1.0, "pb", 7, 1.0)

	top, err := s.analytics.TopByOrders(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta", "Bravo", "Kilo", "Mike"}, names(top))
	assert.Equal(t, 5, top[0].Metric)
	assert.Equal(t, 3, top[4].Metric)

	_, err = s.analytics.TopByOrders(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTopByViews(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Laptop", "Electronics", "999.99", 10)
	s.product(t, "p2", "Mouse", "Electronics", "29.99", 10)
	s.product(t, "p3", "Cable", "Accessories", "9.99", 10)
	ctx := context.Background()

	top, err := s.analytics.TopByViews(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, top)

	a := customer("c1", 1)
	for _, pid := range []string{"p1", "p2", "p1"} {
		_, err := s.catalog.ViewProduct(ctx, a, pid)
		require.NoError(t, err)
	}

	top, err = s.analytics.TopByViews(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Laptop", top[0].Name)
	assert.Equal(t, 2, top[0].Metric)
	assert.Equal(t, "Mouse", top[1].Name)
}

func TestWeeklySalesReport(t *testing.T) {
	s := newStore(t)
	s.product(t, "p1", "Alpha", "Misc", "10.00", 100)
	s.product(t, "p2", "Beta", "Misc", "5.00", 100)
	s.product(t, "p3", "Gamma", "Misc", "1.00", 100)

	s.order(t, 1, "c1", "2026-10-18T09:00:00Z", "p1", 2, 10.0, "p2", 1, 5.0)
	s.order(t, 2, "c2", "2026-10-12T12:00:00Z", "p1", 1, 10.0)
	s.order(t, 3, "c1", "2026-10-01T00:00:00Z", "p3", 9, 1.0)
	s.order(t, 4, "c3", "2026-10-19T12:00:01Z", "p3", 9, 1.0)

	rep, err := s.analytics.WeeklySalesReport(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Orders)
	assert.Equal(t, 2, rep.Products)
	assert.Equal(t, 2, rep.Customers)
	assert.Equal(t, "35.00", rep.Revenue.StringFixed(2))
	assert.Equal(t, "17.50", rep.AveragePerCustomer.StringFixed(2))
	assert.Equal(t, "2026-10-12T12:00:00Z", rep.From)
}

func TestWeeklySalesReportEmptyWindow(t *testing.T) {
	s := newStore(t)
	rep, err := s.analytics.WeeklySalesReport(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, rep.Orders)
	assert.Zero(t, rep.Customers)
	assert.True(t, rep.Revenue.IsZero())
	assert.True(t, rep.AveragePerCustomer.IsZero())
}
