package catalog

import (
	"github.com/gomu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WholesaleTier defines a volume price for a product: buying at least
// MinQuantity units prices each unit at UnitPrice, with an optional extra
// percentage discount on top.
type WholesaleTier struct {
	shared.BaseEntity
	ProductID   int64            `gorm:"not null;index"`
	MinQuantity int              `gorm:"not null"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Discount    *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Active      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (WholesaleTier) TableName() string {
	return "wholesale_tiers"
}

// NewWholesaleTier creates a volume pricing tier for a product
func NewWholesaleTier(productID int64, minQuantity int, unitPrice decimal.Decimal, discount *decimal.Decimal) (*WholesaleTier, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if minQuantity < 2 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity must be at least 2")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be greater than zero")
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100))) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Discount percent must be between 0 and 100")
	}

	return &WholesaleTier{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		MinQuantity: minQuantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		Active:      true,
	}, nil
}

// PriceFor returns the effective unit price for a quantity, or false when
// the quantity does not reach this tier
func (w *WholesaleTier) PriceFor(quantity int) (decimal.Decimal, bool) {
	if !w.Active || quantity < w.MinQuantity {
		return decimal.Zero, false
	}
	price := w.UnitPrice
	if w.Discount != nil {
		factor := decimal.NewFromInt(100).Sub(*w.Discount).Div(decimal.NewFromInt(100))
		price = price.Mul(factor).Round(2)
	}
	return price, true
}

// Update changes the tier's thresholds and pricing
func (w *WholesaleTier) Update(minQuantity int, unitPrice decimal.Decimal, discount *decimal.Decimal) error {
	if minQuantity < 2 {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity must be at least 2")
	}
	if !unitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be greater than zero")
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100))) {
		return shared.NewDomainError("INVALID_PERCENT", "Discount percent must be between 0 and 100")
	}
	w.MinQuantity = minQuantity
	w.UnitPrice = unitPrice
	w.Discount = discount
	w.Touch()
	return nil
}

// SetActive toggles the tier
func (w *WholesaleTier) SetActive(active bool) {
	w.Active = active
	w.Touch()
}
