package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
)

// maxSlugAttempts bounds the numeric-suffix search for a free slug
const maxSlugAttempts = 100

// ProductService handles product management
type ProductService struct {
	products      catalog.ProductRepository
	categories    catalog.CategoryRepository
	subcategories catalog.SubcategoryRepository
	materials     catalog.MaterialRepository
	tags          catalog.TagRepository
	logger        *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	subcategories catalog.SubcategoryRepository,
	materials catalog.MaterialRepository,
	tags catalog.TagRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:      products,
		categories:    categories,
		subcategories: subcategories,
		materials:     materials,
		tags:          tags,
		logger:        logger,
	}
}

// List returns products matching the filter, with the total count for
// pagination
func (s *ProductService) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	return s.products.FindAll(ctx, filter)
}

// Get returns a single product by id
func (s *ProductService) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// GetBySlug returns a single product by its public slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

// Create creates a product, deriving a unique slug from the category and
// product names
func (s *ProductService) Create(ctx context.Context, input ProductCreateInput) (*catalog.Product, error) {
	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	subcategory, err := s.subcategories.FindByID(ctx, input.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if subcategory.CategoryID != category.ID {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Subcategory does not belong to the given category")
	}
	if _, err := s.materials.FindByID(ctx, input.MaterialID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(input.Name, category.Name,
		input.CategoryID, input.SubcategoryID, input.MaterialID,
		input.ProductionCost, input.SalePrice)
	if err != nil {
		return nil, err
	}

	product.Description = input.Description
	product.DetailedDescription = input.DetailedDescription
	product.Size = input.Size
	product.Color = input.Color
	product.MainImage = input.MainImage
	product.GalleryImages = input.GalleryImages
	product.IsNew = input.IsNew
	product.Featured = input.Featured
	if err := product.AdjustStock(input.Stock); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		tags, err := s.resolveTags(ctx, input.TagIDs)
		if err != nil {
			return nil, err
		}
		product.Tags = tags
	}

	if err := s.ensureUniqueSlug(ctx, product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Created product",
		zap.Int64("product_id", product.ID),
		zap.String("slug", product.Slug))
	return product, nil
}

// Update applies a partial update to a product. Renames and category moves
// regenerate the slug.
func (s *ProductService) Update(ctx context.Context, id int64, input ProductUpdateInput) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.SubcategoryID != nil {
		product.SubcategoryID = *input.SubcategoryID
	}
	if input.MaterialID != nil {
		if _, err := s.materials.FindByID(ctx, *input.MaterialID); err != nil {
			return nil, err
		}
		product.MaterialID = *input.MaterialID
	}

	category, err := s.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if input.SubcategoryID != nil {
		subcategory, err := s.subcategories.FindByID(ctx, *input.SubcategoryID)
		if err != nil {
			return nil, err
		}
		if subcategory.CategoryID != category.ID {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Subcategory does not belong to the given category")
		}
	}

	previousSlug := product.Slug
	if input.Name != nil || input.CategoryID != nil {
		name := product.Name
		if input.Name != nil {
			name = *input.Name
		}
		if err := product.Rename(name, category.Name); err != nil {
			return nil, err
		}
	}

	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.DetailedDescription != nil {
		product.DetailedDescription = *input.DetailedDescription
	}
	if input.Size != nil {
		product.Size = *input.Size
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.ProductionCost != nil || input.SalePrice != nil {
		cost := product.ProductionCost
		price := product.SalePrice
		if input.ProductionCost != nil {
			cost = *input.ProductionCost
		}
		if input.SalePrice != nil {
			price = *input.SalePrice
		}
		if err := product.Reprice(cost, price); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil {
		if err := product.AdjustStock(*input.Stock); err != nil {
			return nil, err
		}
	}
	if input.MainImage != nil {
		product.MainImage = *input.MainImage
	}
	if input.GalleryImages != nil {
		product.GalleryImages = *input.GalleryImages
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.Featured != nil {
		product.SetFeatured(*input.Featured)
	}
	if input.Active != nil {
		product.SetActive(*input.Active)
	}

	if product.Slug != previousSlug {
		if err := s.ensureUniqueSlug(ctx, product); err != nil {
			return nil, err
		}
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		tags, err := s.resolveTags(ctx, input.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.products.ReplaceTags(ctx, product, tags); err != nil {
			return nil, err
		}
		product.Tags = tags
	}

	return product, nil
}

// Delete removes a product and its tag links
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted product", zap.Int64("product_id", id))
	return nil
}

// ensureUniqueSlug appends a numeric suffix until the slug is free
func (s *ProductService) ensureUniqueSlug(ctx context.Context, product *catalog.Product) error {
	base := product.Slug
	for attempt := 1; attempt < maxSlugAttempts; attempt++ {
		exists, err := s.products.SlugExists(ctx, product.Slug)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		product.SetSlug(fmt.Sprintf("%s-%d", base, attempt+1))
	}
	return shared.NewDomainError("SLUG_EXHAUSTED", "Could not derive a unique slug for the product")
}

// resolveTags loads tags by id, failing if any are unknown
func (s *ProductService) resolveTags(ctx context.Context, tagIDs []int64) ([]catalog.Tag, error) {
	tags, err := s.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, shared.NewDomainError("INVALID_TAGS", "One or more tags do not exist")
	}
	return tags, nil
}
