package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDiscountRepository implements catalog.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

func (r *GormDiscountRepository) FindByID(ctx context.Context, id int64) (*catalog.Discount, error) {
	var discount catalog.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &discount, nil
}

func (r *GormDiscountRepository) FindAll(ctx context.Context) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// FindCurrent returns active discounts whose date window contains now
func (r *GormDiscountRepository) FindCurrent(ctx context.Context) ([]catalog.Discount, error) {
	now := time.Now()
	var discounts []catalog.Discount
	if err := r.db.WithContext(ctx).
		Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("percent DESC").
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *GormDiscountRepository) Create(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *GormDiscountRepository) Update(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *GormDiscountRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Discount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormWholesaleTierRepository implements catalog.WholesaleTierRepository
type GormWholesaleTierRepository struct {
	db *gorm.DB
}

// NewGormWholesaleTierRepository creates a new GormWholesaleTierRepository
func NewGormWholesaleTierRepository(db *gorm.DB) *GormWholesaleTierRepository {
	return &GormWholesaleTierRepository{db: db}
}

func (r *GormWholesaleTierRepository) FindByID(ctx context.Context, id int64) (*catalog.WholesaleTier, error) {
	var tier catalog.WholesaleTier
	if err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tier, nil
}

// FindByProduct returns the product's tiers ordered by minimum quantity
func (r *GormWholesaleTierRepository) FindByProduct(ctx context.Context, productID int64) ([]catalog.WholesaleTier, error) {
	var tiers []catalog.WholesaleTier
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("min_quantity ASC").
		Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *GormWholesaleTierRepository) Create(ctx context.Context, tier *catalog.WholesaleTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *GormWholesaleTierRepository) Update(ctx context.Context, tier *catalog.WholesaleTier) error {
	return r.db.WithContext(ctx).Save(tier).Error
}

func (r *GormWholesaleTierRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.WholesaleTier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormFavoriteRepository implements catalog.FavoriteRepository
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) FindByUser(ctx context.Context, userID int64) ([]catalog.Favorite, error) {
	var favorites []catalog.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormFavoriteRepository) Create(ctx context.Context, favorite *catalog.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *GormFavoriteRepository) Delete(ctx context.Context, userID, productID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&catalog.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.DiscountRepository      = (*GormDiscountRepository)(nil)
	_ catalog.WholesaleTierRepository = (*GormWholesaleTierRepository)(nil)
	_ catalog.FavoriteRepository      = (*GormFavoriteRepository)(nil)
)
