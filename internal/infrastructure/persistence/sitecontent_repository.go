package persistence

import (
	"context"
	"errors"

	"github.com/gomu/backend/internal/domain/sitecontent"
	"gorm.io/gorm"
)

// GormPageConfigRepository implements sitecontent.PageConfigRepository.
// The table holds a single row that is created lazily on first read.
type GormPageConfigRepository struct {
	db *gorm.DB
}

// NewGormPageConfigRepository creates a new GormPageConfigRepository
func NewGormPageConfigRepository(db *gorm.DB) *GormPageConfigRepository {
	return &GormPageConfigRepository{db: db}
}

// Get returns the configuration row, creating the default one when the
// table is empty
func (r *GormPageConfigRepository) Get(ctx context.Context) (*sitecontent.PageConfig, error) {
	var config sitecontent.PageConfig
	err := r.db.WithContext(ctx).Order("id ASC").First(&config).Error
	if err == nil {
		return &config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := sitecontent.DefaultPageConfig()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists changes to the configuration row
func (r *GormPageConfigRepository) Save(ctx context.Context, config *sitecontent.PageConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// GormStoreSettingsRepository implements
// sitecontent.StoreSettingsRepository with the same lazy singleton shape
type GormStoreSettingsRepository struct {
	db *gorm.DB
}

// NewGormStoreSettingsRepository creates a new GormStoreSettingsRepository
func NewGormStoreSettingsRepository(db *gorm.DB) *GormStoreSettingsRepository {
	return &GormStoreSettingsRepository{db: db}
}

// Get returns the settings row, creating the default one when missing
func (r *GormStoreSettingsRepository) Get(ctx context.Context) (*sitecontent.StoreSettings, error) {
	var settings sitecontent.StoreSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := sitecontent.DefaultStoreSettings()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists changes to the settings row
func (r *GormStoreSettingsRepository) Save(ctx context.Context, settings *sitecontent.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

var (
	_ sitecontent.PageConfigRepository    = (*GormPageConfigRepository)(nil)
	_ sitecontent.StoreSettingsRepository = (*GormStoreSettingsRepository)(nil)
)
