package handler

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/gomu/backend/internal/domain/catalog"
)

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Active:      category.Active,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// SubcategoryResponse represents a subcategory in responses
type SubcategoryResponse struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSubcategoryResponse(subcategory *catalog.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:          subcategory.ID,
		CategoryID:  subcategory.CategoryID,
		Name:        subcategory.Name,
		Slug:        subcategory.Slug,
		Description: subcategory.Description,
		Active:      subcategory.Active,
		CreatedAt:   subcategory.CreatedAt,
		UpdatedAt:   subcategory.UpdatedAt,
	}
}

// TaxonomyResponse covers materials and tags, which share a shape
type TaxonomyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newMaterialResponse(material *catalog.Material) TaxonomyResponse {
	return TaxonomyResponse{
		ID:          material.ID,
		Name:        material.Name,
		Description: material.Description,
		Active:      material.Active,
		CreatedAt:   material.CreatedAt,
		UpdatedAt:   material.UpdatedAt,
	}
}

func newTagResponse(tag *catalog.Tag) TaxonomyResponse {
	return TaxonomyResponse{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
		Active:      tag.Active,
		CreatedAt:   tag.CreatedAt,
		UpdatedAt:   tag.UpdatedAt,
	}
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID                  int64              `json:"id"`
	Name                string             `json:"name"`
	Slug                string             `json:"slug"`
	Description         string             `json:"description"`
	DetailedDescription string             `json:"detailed_description"`
	CategoryID          int64              `json:"category_id"`
	SubcategoryID       int64              `json:"subcategory_id"`
	MaterialID          int64              `json:"material_id"`
	Size                string             `json:"size"`
	Color               string             `json:"color"`
	ProductionCost      decimal.Decimal    `json:"production_cost"`
	SalePrice           decimal.Decimal    `json:"sale_price"`
	Stock               int                `json:"stock"`
	MainImage           string             `json:"main_image"`
	GalleryImages       datatypes.JSON     `json:"gallery_images"`
	IsNew               bool               `json:"is_new"`
	Featured            bool               `json:"featured"`
	Active              bool               `json:"active"`
	Tags                []TaxonomyResponse `json:"tags"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func newProductResponse(product *catalog.Product) ProductResponse {
	tags := make([]TaxonomyResponse, 0, len(product.Tags))
	for i := range product.Tags {
		tags = append(tags, newTagResponse(&product.Tags[i]))
	}
	return ProductResponse{
		ID:                  product.ID,
		Name:                product.Name,
		Slug:                product.Slug,
		Description:         product.Description,
		DetailedDescription: product.DetailedDescription,
		CategoryID:          product.CategoryID,
		SubcategoryID:       product.SubcategoryID,
		MaterialID:          product.MaterialID,
		Size:                product.Size,
		Color:               product.Color,
		ProductionCost:      product.ProductionCost,
		SalePrice:           product.SalePrice,
		Stock:               product.Stock,
		MainImage:           product.MainImage,
		GalleryImages:       product.GalleryImages,
		IsNew:               product.IsNew,
		Featured:            product.Featured,
		Active:              product.Active,
		Tags:                tags,
		CreatedAt:           product.CreatedAt,
		UpdatedAt:           product.UpdatedAt,
	}
}

// DiscountResponse represents a discount in responses
type DiscountResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Scope      string          `json:"scope"`
	CategoryID *int64          `json:"category_id"`
	ProductID  *int64          `json:"product_id"`
	Percent    decimal.Decimal `json:"percent"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func newDiscountResponse(discount *catalog.Discount) DiscountResponse {
	return DiscountResponse{
		ID:         discount.ID,
		Name:       discount.Name,
		Scope:      string(discount.Scope),
		CategoryID: discount.CategoryID,
		ProductID:  discount.ProductID,
		Percent:    discount.Percent,
		StartDate:  discount.StartDate,
		EndDate:    discount.EndDate,
		Active:     discount.Active,
		CreatedAt:  discount.CreatedAt,
		UpdatedAt:  discount.UpdatedAt,
	}
}

// WholesaleTierResponse represents a wholesale pricing tier in responses
type WholesaleTierResponse struct {
	ID          int64            `json:"id"`
	ProductID   int64            `json:"product_id"`
	MinQuantity int              `json:"min_quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func newWholesaleTierResponse(tier *catalog.WholesaleTier) WholesaleTierResponse {
	return WholesaleTierResponse{
		ID:          tier.ID,
		ProductID:   tier.ProductID,
		MinQuantity: tier.MinQuantity,
		UnitPrice:   tier.UnitPrice,
		Discount:    tier.Discount,
		Active:      tier.Active,
		CreatedAt:   tier.CreatedAt,
		UpdatedAt:   tier.UpdatedAt,
	}
}
