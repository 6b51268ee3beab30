package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts qty to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	qty, err := s.Inv.Qty(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}

func (s *InventoryService) ListAll(ctx context.Context) ([]repos.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}
