package catalog

import (
	"github.com/gomu/backend/internal/domain/shared"
)

// Favorite marks a product saved by a user. A user can favorite a product
// at most once.
type Favorite struct {
	shared.BaseEntity
	UserID    int64 `gorm:"not null;uniqueIndex:idx_favorites_user_product,priority:1"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_favorites_user_product,priority:2"`
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite creates a favorite link between a user and a product
func NewFavorite(userID, productID int64) (*Favorite, error) {
	if userID <= 0 {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	return &Favorite{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
	}, nil
}
