package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
)

// CategoryService handles category and subcategory management
type CategoryService struct {
	categories    catalog.CategoryRepository
	subcategories catalog.SubcategoryRepository
	logger        *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categories catalog.CategoryRepository,
	subcategories catalog.SubcategoryRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categories:    categories,
		subcategories: subcategories,
		logger:        logger,
	}
}

// ListCategories returns categories, optionally restricted to active ones
// for the public storefront
func (s *CategoryService) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	return s.categories.FindAll(ctx, activeOnly)
}

// GetCategory returns a single category by id
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*catalog.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// CreateCategory creates a category
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*catalog.Category, error) {
	category, err := catalog.NewCategory(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Created category", zap.Int64("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// UpdateCategory updates a category's fields
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*catalog.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Active != nil {
		category.SetActive(*input.Active)
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted category", zap.Int64("category_id", id))
	return nil
}

// ListSubcategories returns subcategories, optionally scoped to one category
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID *int64) ([]catalog.Subcategory, error) {
	if categoryID != nil {
		return s.subcategories.FindByCategory(ctx, *categoryID)
	}
	return s.subcategories.FindAll(ctx)
}

// GetSubcategory returns a single subcategory by id
func (s *CategoryService) GetSubcategory(ctx context.Context, id int64) (*catalog.Subcategory, error) {
	return s.subcategories.FindByID(ctx, id)
}

// CreateSubcategory creates a subcategory under an existing category
func (s *CategoryService) CreateSubcategory(ctx context.Context, input SubcategoryInput) (*catalog.Subcategory, error) {
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	subcategory, err := catalog.NewSubcategory(input.CategoryID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.subcategories.Create(ctx, subcategory); err != nil {
		return nil, err
	}
	s.logger.Info("Created subcategory",
		zap.Int64("subcategory_id", subcategory.ID),
		zap.Int64("category_id", subcategory.CategoryID))
	return subcategory, nil
}

// UpdateSubcategory updates a subcategory's fields
func (s *CategoryService) UpdateSubcategory(ctx context.Context, id int64, input SubcategoryInput) (*catalog.Subcategory, error) {
	subcategory, err := s.subcategories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := subcategory.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Active != nil {
		subcategory.SetActive(*input.Active)
	}
	if err := s.subcategories.Update(ctx, subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

// DeleteSubcategory removes a subcategory
func (s *CategoryService) DeleteSubcategory(ctx context.Context, id int64) error {
	if _, err := s.subcategories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.subcategories.Delete(ctx, id)
}
