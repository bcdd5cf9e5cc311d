package catalog

import (
	"strings"
	"time"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountScope determines what a discount applies to
type DiscountScope string

const (
	DiscountScopeGlobal   DiscountScope = "global"
	DiscountScopeCategory DiscountScope = "category"
	DiscountScopeProduct  DiscountScope = "product"
)

// IsValid returns true if the scope is a known value
func (s DiscountScope) IsValid() bool {
	return s == DiscountScopeGlobal || s == DiscountScopeCategory || s == DiscountScopeProduct
}

// Discount is a percentage reduction applied store-wide, to a category, or
// to a single product, within a date window
type Discount struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Code        string          `gorm:"type:varchar(50)"`
	Scope       DiscountScope   `gorm:"type:varchar(20);not null"`
	CategoryID  *int64          `gorm:"index"`
	ProductID   *int64          `gorm:"index"`
	Percent     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Season      string          `gorm:"type:varchar(50)"`
	StartDate   time.Time       `gorm:"not null"`
	EndDate     time.Time       `gorm:"not null"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a discount. Category and product targets are only
// honored for the matching scope.
func NewDiscount(name string, scope DiscountScope, percent decimal.Decimal, startDate, endDate time.Time, categoryID, productID *int64) (*Discount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Scope must be 'global', 'category' or 'product'")
	}
	if !percent.IsPositive() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Discount percent must be between 0 and 100")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATES", "End date cannot be before start date")
	}
	if scope == DiscountScopeCategory && categoryID == nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Category discount requires a category")
	}
	if scope == DiscountScopeProduct && productID == nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Product discount requires a product")
	}

	discount := &Discount{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Scope:      scope,
		Percent:    percent,
		StartDate:  startDate,
		EndDate:    endDate,
		Active:     true,
	}
	switch scope {
	case DiscountScopeCategory:
		discount.CategoryID = categoryID
	case DiscountScopeProduct:
		discount.ProductID = productID
	}
	return discount, nil
}

// IsCurrent reports whether the discount is active and inside its window
func (d *Discount) IsCurrent(now time.Time) bool {
	return d.Active && !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Apply returns the price after the discount percentage
func (d *Discount) Apply(price decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(100).Sub(d.Percent).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

// SetActive toggles the discount
func (d *Discount) SetActive(active bool) {
	d.Active = active
	d.Touch()
}
