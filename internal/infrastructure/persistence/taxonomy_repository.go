package persistence

import (
	"context"
	"errors"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSubcategoryRepository implements catalog.SubcategoryRepository
type GormSubcategoryRepository struct {
	db *gorm.DB
}

// NewGormSubcategoryRepository creates a new GormSubcategoryRepository
func NewGormSubcategoryRepository(db *gorm.DB) *GormSubcategoryRepository {
	return &GormSubcategoryRepository{db: db}
}

func (r *GormSubcategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.Subcategory, error) {
	var subcategory catalog.Subcategory
	if err := r.db.WithContext(ctx).First(&subcategory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}

func (r *GormSubcategoryRepository) FindByCategory(ctx context.Context, categoryID int64) ([]catalog.Subcategory, error) {
	var subcategories []catalog.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *GormSubcategoryRepository) FindAll(ctx context.Context) ([]catalog.Subcategory, error) {
	var subcategories []catalog.Subcategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *GormSubcategoryRepository) Create(ctx context.Context, subcategory *catalog.Subcategory) error {
	return r.db.WithContext(ctx).Create(subcategory).Error
}

func (r *GormSubcategoryRepository) Update(ctx context.Context, subcategory *catalog.Subcategory) error {
	return r.db.WithContext(ctx).Save(subcategory).Error
}

func (r *GormSubcategoryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Subcategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormMaterialRepository implements catalog.MaterialRepository
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

func (r *GormMaterialRepository) FindByID(ctx context.Context, id int64) (*catalog.Material, error) {
	var material catalog.Material
	if err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *GormMaterialRepository) FindAll(ctx context.Context) ([]catalog.Material, error) {
	var materials []catalog.Material
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *GormMaterialRepository) Create(ctx context.Context, material *catalog.Material) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *GormMaterialRepository) Update(ctx context.Context, material *catalog.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *GormMaterialRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Material{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormTagRepository implements catalog.TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) FindByID(ctx context.Context, id int64) (*catalog.Tag, error) {
	var tag catalog.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []catalog.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) FindAll(ctx context.Context) ([]catalog.Tag, error) {
	var tags []catalog.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) Create(ctx context.Context, tag *catalog.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *GormTagRepository) Update(ctx context.Context, tag *catalog.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *GormTagRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.SubcategoryRepository = (*GormSubcategoryRepository)(nil)
	_ catalog.MaterialRepository    = (*GormMaterialRepository)(nil)
	_ catalog.TagRepository         = (*GormTagRepository)(nil)
)
