package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
)

// WholesaleService handles volume pricing tiers
type WholesaleService struct {
	tiers    catalog.WholesaleTierRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewWholesaleService creates a new wholesale pricing service
func NewWholesaleService(
	tiers catalog.WholesaleTierRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *WholesaleService {
	return &WholesaleService{
		tiers:    tiers,
		products: products,
		logger:   logger,
	}
}

// ListForProduct returns a product's tiers ordered by minimum quantity
func (s *WholesaleService) ListForProduct(ctx context.Context, productID int64) ([]catalog.WholesaleTier, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.tiers.FindByProduct(ctx, productID)
}

// Create creates a tier for an existing product
func (s *WholesaleService) Create(ctx context.Context, input WholesaleTierInput) (*catalog.WholesaleTier, error) {
	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}
	tier, err := catalog.NewWholesaleTier(input.ProductID, input.MinQuantity, input.UnitPrice, input.Discount)
	if err != nil {
		return nil, err
	}
	if err := s.tiers.Create(ctx, tier); err != nil {
		return nil, err
	}
	s.logger.Info("Created wholesale tier",
		zap.Int64("tier_id", tier.ID),
		zap.Int64("product_id", tier.ProductID),
		zap.Int("min_quantity", tier.MinQuantity))
	return tier, nil
}

// Update changes a tier's thresholds and pricing
func (s *WholesaleService) Update(ctx context.Context, id int64, input WholesaleTierInput) (*catalog.WholesaleTier, error) {
	tier, err := s.tiers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tier.Update(input.MinQuantity, input.UnitPrice, input.Discount); err != nil {
		return nil, err
	}
	if input.Active != nil {
		tier.SetActive(*input.Active)
	}
	if err := s.tiers.Update(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// Delete removes a tier
func (s *WholesaleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.tiers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tiers.Delete(ctx, id)
}

// PriceFor returns the effective unit price for a product at a quantity,
// falling back to the retail price when no tier is reached
func (s *WholesaleService) PriceFor(ctx context.Context, productID int64, quantity int) (decimal.Decimal, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	tiers, err := s.tiers.FindByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	// Tiers come ordered by ascending minimum quantity, so the last one
	// reached wins
	price := product.SalePrice
	for _, tier := range tiers {
		if tierPrice, ok := tier.PriceFor(quantity); ok {
			price = tierPrice
		}
	}
	return price, nil
}
