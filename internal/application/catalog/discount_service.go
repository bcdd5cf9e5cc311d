package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
)

// DiscountService handles discount management
type DiscountService struct {
	discounts  catalog.DiscountRepository
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	logger     *zap.Logger
}

// NewDiscountService creates a new discount service
func NewDiscountService(
	discounts catalog.DiscountRepository,
	categories catalog.CategoryRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *DiscountService {
	return &DiscountService{
		discounts:  discounts,
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// List returns every discount
func (s *DiscountService) List(ctx context.Context) ([]catalog.Discount, error) {
	return s.discounts.FindAll(ctx)
}

// ListCurrent returns active discounts whose window covers the present,
// for the public storefront
func (s *DiscountService) ListCurrent(ctx context.Context) ([]catalog.Discount, error) {
	return s.discounts.FindCurrent(ctx)
}

// Get returns a single discount by id
func (s *DiscountService) Get(ctx context.Context, id int64) (*catalog.Discount, error) {
	return s.discounts.FindByID(ctx, id)
}

// Create creates a discount after checking its scope target exists
func (s *DiscountService) Create(ctx context.Context, input DiscountInput) (*catalog.Discount, error) {
	discount, err := catalog.NewDiscount(input.Name, catalog.DiscountScope(input.Scope),
		input.Percent, input.StartDate, input.EndDate, input.CategoryID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := s.checkScopeTarget(ctx, discount); err != nil {
		return nil, err
	}
	if err := s.discounts.Create(ctx, discount); err != nil {
		return nil, err
	}
	s.logger.Info("Created discount",
		zap.Int64("discount_id", discount.ID),
		zap.String("scope", string(discount.Scope)))
	return discount, nil
}

// Update replaces a discount's fields
func (s *DiscountService) Update(ctx context.Context, id int64, input DiscountInput) (*catalog.Discount, error) {
	existing, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := catalog.NewDiscount(input.Name, catalog.DiscountScope(input.Scope),
		input.Percent, input.StartDate, input.EndDate, input.CategoryID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := s.checkScopeTarget(ctx, updated); err != nil {
		return nil, err
	}

	updated.BaseEntity = existing.BaseEntity
	updated.Touch()
	if input.Active != nil {
		updated.SetActive(*input.Active)
	}

	if err := s.discounts.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a discount
func (s *DiscountService) Delete(ctx context.Context, id int64) error {
	if _, err := s.discounts.FindByID(ctx, id); err != nil {
		return err
	}
	return s.discounts.Delete(ctx, id)
}

// checkScopeTarget verifies the category or product a scoped discount
// points at actually exists
func (s *DiscountService) checkScopeTarget(ctx context.Context, discount *catalog.Discount) error {
	switch discount.Scope {
	case catalog.DiscountScopeCategory:
		if discount.CategoryID == nil {
			return shared.NewDomainError("INVALID_SCOPE", "Category discounts require a category")
		}
		if _, err := s.categories.FindByID(ctx, *discount.CategoryID); err != nil {
			return err
		}
	case catalog.DiscountScopeProduct:
		if discount.ProductID == nil {
			return shared.NewDomainError("INVALID_SCOPE", "Product discounts require a product")
		}
		if _, err := s.products.FindByID(ctx, *discount.ProductID); err != nil {
			return err
		}
	}
	return nil
}
