package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CategoryInput contains the input for creating or updating a category
type CategoryInput struct {
	Name        string
	Description string
	Active      *bool
}

// SubcategoryInput contains the input for creating or updating a subcategory
type SubcategoryInput struct {
	CategoryID  int64
	Name        string
	Description string
	Active      *bool
}

// TaxonomyInput covers materials and tags, which share a shape
type TaxonomyInput struct {
	Name        string
	Description string
	Active      *bool
}

// ProductCreateInput contains the input for creating a product
type ProductCreateInput struct {
	Name                string
	Description         string
	DetailedDescription string
	CategoryID          int64
	SubcategoryID       int64
	MaterialID          int64
	Size                string
	Color               string
	ProductionCost      decimal.Decimal
	SalePrice           decimal.Decimal
	Stock               int
	MainImage           string
	GalleryImages       datatypes.JSON
	IsNew               bool
	Featured            bool
	TagIDs              []int64
}

// ProductUpdateInput carries partial updates: nil fields are left untouched
type ProductUpdateInput struct {
	Name                *string
	Description         *string
	DetailedDescription *string
	CategoryID          *int64
	SubcategoryID       *int64
	MaterialID          *int64
	Size                *string
	Color               *string
	ProductionCost      *decimal.Decimal
	SalePrice           *decimal.Decimal
	Stock               *int
	MainImage           *string
	GalleryImages       *datatypes.JSON
	IsNew               *bool
	Featured            *bool
	Active              *bool
	TagIDs              []int64
}

// DiscountInput contains the input for creating or updating a discount
type DiscountInput struct {
	Name       string
	Scope      string
	Percent    decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *int64
	ProductID  *int64
	Active     *bool
}

// WholesaleTierInput contains the input for creating or updating a
// wholesale pricing tier
type WholesaleTierInput struct {
	ProductID   int64
	MinQuantity int
	UnitPrice   decimal.Decimal
	Discount    *decimal.Decimal
	Active      *bool
}
