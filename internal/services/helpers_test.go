package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type store struct {
	db        *sqlx.DB
	cart      *services.CartService
	checkout  *services.CheckoutService
	orders    *services.OrderService
	catalog   *services.CatalogService
	inventory *services.InventoryService
	analytics *services.AnalyticsService
	auth      *services.AuthService
}

func newStore(t *testing.T) *store {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	s := &store{
		db:        db,
		cart:      services.NewCartService(cartRepo, prodRepo),
		checkout:  services.NewCheckoutService(db, cartRepo, orderRepo),
		orders:    services.NewOrderService(orderRepo),
		catalog:   services.NewCatalogService(repos.NewCategoryRepo(db), prodRepo, invRepo, repos.NewActivityRepo(db)),
		inventory: services.NewInventoryService(invRepo),
		analytics: services.NewAnalyticsService(repos.NewAnalyticsRepo(db)),
		auth:      services.NewAuthService(repos.NewUserRepo(db)),
	}
	clock := func() time.Time { return fixedNow }
	s.checkout.Now = clock
	s.catalog.Now = clock
	s.auth.Now = clock
	return s
}

func (s *store) product(t *testing.T, id, name, category, price string, stock int) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO products(pid,name,category,price,stock_count,descr) VALUES(?,?,?,?,?,?)`,
		id, name, category, price, stock, name+" description")
	require.NoError(t, err)
}

func (s *store) stock(t *testing.T, id string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, `SELECT stock_count FROM products WHERE pid = ?`, id))
	return n
}

func (s *store) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func customer(id string, session int) domain.Actor {
	return domain.Actor{UserID: id, CustomerID: id, SessionNo: session, Role: domain.RoleCustomer}
}
