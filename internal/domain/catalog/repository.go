package catalog

import (
	"context"
)

// CategoryRepository is the persistence port for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
}

// SubcategoryRepository is the persistence port for subcategories
type SubcategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Subcategory, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]Subcategory, error)
	FindAll(ctx context.Context) ([]Subcategory, error)
	Create(ctx context.Context, subcategory *Subcategory) error
	Update(ctx context.Context, subcategory *Subcategory) error
	Delete(ctx context.Context, id int64) error
}

// MaterialRepository is the persistence port for material types
type MaterialRepository interface {
	FindByID(ctx context.Context, id int64) (*Material, error)
	FindAll(ctx context.Context) ([]Material, error)
	Create(ctx context.Context, material *Material) error
	Update(ctx context.Context, material *Material) error
	Delete(ctx context.Context, id int64) error
}

// TagRepository is the persistence port for tags
type TagRepository interface {
	FindByID(ctx context.Context, id int64) (*Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Tag, error)
	FindAll(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, tag *Tag) error
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id int64) error
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID    *int64
	SubcategoryID *int64
	MaterialID    *int64
	TagID         *int64
	Featured      *bool
	IsNew         *bool
	ActiveOnly    bool
	Search        string
	Page          int
	PageSize      int
}

// ProductRepository is the persistence port for products
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	ReplaceTags(ctx context.Context, product *Product, tags []Tag) error
	Delete(ctx context.Context, id int64) error
}

// DiscountRepository is the persistence port for discounts
type DiscountRepository interface {
	FindByID(ctx context.Context, id int64) (*Discount, error)
	FindAll(ctx context.Context) ([]Discount, error)
	FindCurrent(ctx context.Context) ([]Discount, error)
	Create(ctx context.Context, discount *Discount) error
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id int64) error
}

// WholesaleTierRepository is the persistence port for volume pricing
type WholesaleTierRepository interface {
	FindByID(ctx context.Context, id int64) (*WholesaleTier, error)
	// FindByProduct returns the product's tiers ordered by minimum
	// quantity ascending
	FindByProduct(ctx context.Context, productID int64) ([]WholesaleTier, error)
	Create(ctx context.Context, tier *WholesaleTier) error
	Update(ctx context.Context, tier *WholesaleTier) error
	Delete(ctx context.Context, id int64) error
}

// FavoriteRepository is the persistence port for user favorites
type FavoriteRepository interface {
	FindByUser(ctx context.Context, userID int64) ([]Favorite, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Create(ctx context.Context, favorite *Favorite) error
	Delete(ctx context.Context, userID, productID int64) error
}
