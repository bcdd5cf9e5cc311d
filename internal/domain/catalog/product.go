package catalog

import (
	"strings"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a sellable item in the catalog
type Product struct {
	shared.BaseEntity
	Name                string `gorm:"type:varchar(150);not null"`
	Slug                string `gorm:"type:varchar(300);not null;uniqueIndex"`
	Description         string `gorm:"type:text"`
	DetailedDescription string `gorm:"type:text"`
	CategoryID          int64  `gorm:"not null;index"`
	SubcategoryID       int64  `gorm:"not null;index"`
	MaterialID          int64  `gorm:"not null;index"`
	Size                string `gorm:"type:varchar(50)"`
	Color               string `gorm:"type:varchar(50)"`
	// ProductionCost is what the item costs to make, SalePrice what the
	// store charges for it
	ProductionCost decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SalePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock          int             `gorm:"not null;default:0"`
	MainImage      string          `gorm:"type:varchar(500)"`
	GalleryImages  datatypes.JSON  `gorm:"type:jsonb"`
	IsNew          bool            `gorm:"not null;default:false"`
	Featured       bool            `gorm:"not null;default:false"`
	Active         bool            `gorm:"not null;default:true"`
	Tags           []Tag           `gorm:"many2many:product_tags"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product under the given category. The category name
// is needed to derive the full slug.
func NewProduct(name, categoryName string, categoryID, subcategoryID, materialID int64, productionCost, salePrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 150 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 150 characters")
	}
	if categoryID <= 0 || subcategoryID <= 0 || materialID <= 0 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Category, subcategory and material are required")
	}
	if err := validatePrices(productionCost, salePrice); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Slug:           ProductSlug(categoryName, name),
		CategoryID:     categoryID,
		SubcategoryID:  subcategoryID,
		MaterialID:     materialID,
		ProductionCost: productionCost,
		SalePrice:      salePrice,
		Active:         true,
	}, nil
}

// Rename changes the product name and regenerates the slug from the
// current category name
func (p *Product) Rename(name, categoryName string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Slug = ProductSlug(categoryName, name)
	p.Touch()
	return nil
}

// Reprice updates the production cost and sale price
func (p *Product) Reprice(productionCost, salePrice decimal.Decimal) error {
	if err := validatePrices(productionCost, salePrice); err != nil {
		return err
	}
	p.ProductionCost = productionCost
	p.SalePrice = salePrice
	p.Touch()
	return nil
}

// AdjustStock sets the absolute stock level
func (p *Product) AdjustStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	return nil
}

// SetSlug overrides the derived slug, used to disambiguate collisions
// with a numeric suffix
func (p *Product) SetSlug(slug string) {
	p.Slug = slug
}

// SetActive toggles storefront visibility
func (p *Product) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.Touch()
}

func validatePrices(productionCost, salePrice decimal.Decimal) error {
	if productionCost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Production cost cannot be negative")
	}
	if !salePrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price must be greater than zero")
	}
	return nil
}
