package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/config"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AdminHandler     *AdminHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, invRepo, repos.NewActivityRepo(db))
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo)
	analyticsSvc := services.NewAnalyticsService(repos.NewAnalyticsRepo(db))

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: auth},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Inv: invSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Checkout: checkoutSvc, Orders: orderSvc},
		AdminHandler: &AdminHandler{
			Catalog:   catalogSvc,
			Inv:       invSvc,
			Analytics: analyticsSvc,
			TopN:      cfg.TopN,
			Now:       time.Now,
		},
		Auth: auth,
	}
}
