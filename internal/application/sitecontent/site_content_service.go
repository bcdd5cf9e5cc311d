package sitecontent

import (
	"context"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/sitecontent"
)

// SiteContentCache caches the two storefront singletons. A nil cache or a
// cache failure just falls through to the repository.
type SiteContentCache interface {
	GetPageConfig(ctx context.Context) (*sitecontent.PageConfig, error)
	SetPageConfig(ctx context.Context, config *sitecontent.PageConfig) error
	InvalidatePageConfig(ctx context.Context) error
	GetStoreSettings(ctx context.Context) (*sitecontent.StoreSettings, error)
	SetStoreSettings(ctx context.Context, settings *sitecontent.StoreSettings) error
	InvalidateStoreSettings(ctx context.Context) error
}

// SiteContentService handles the home page configuration and store
// settings singletons
type SiteContentService struct {
	pageConfigs sitecontent.PageConfigRepository
	settings    sitecontent.StoreSettingsRepository
	cache       SiteContentCache
	logger      *zap.Logger
}

// NewSiteContentService creates a new site content service. The cache is
// optional.
func NewSiteContentService(
	pageConfigs sitecontent.PageConfigRepository,
	settings sitecontent.StoreSettingsRepository,
	cache SiteContentCache,
	logger *zap.Logger,
) *SiteContentService {
	return &SiteContentService{
		pageConfigs: pageConfigs,
		settings:    settings,
		cache:       cache,
		logger:      logger,
	}
}

// GetPageConfig returns the page configuration, serving from cache when
// possible
func (s *SiteContentService) GetPageConfig(ctx context.Context) (*sitecontent.PageConfig, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPageConfig(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	config, err := s.pageConfigs.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPageConfig(ctx, config); err != nil {
			s.logger.Warn("Failed to cache page config", zap.Error(err))
		}
	}
	return config, nil
}

// UpdatePageConfig applies a partial update and invalidates the cache
func (s *SiteContentService) UpdatePageConfig(ctx context.Context, update sitecontent.PageConfigUpdate) (*sitecontent.PageConfig, error) {
	config, err := s.pageConfigs.Get(ctx)
	if err != nil {
		return nil, err
	}

	config.Apply(update)
	if err := s.pageConfigs.Save(ctx, config); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePageConfig(ctx); err != nil {
			s.logger.Warn("Failed to invalidate page config cache", zap.Error(err))
		}
	}

	s.logger.Info("Updated page config", zap.Int64("config_id", config.ID))
	return config, nil
}

// GetStoreSettings returns the store settings, serving from cache when
// possible
func (s *SiteContentService) GetStoreSettings(ctx context.Context) (*sitecontent.StoreSettings, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStoreSettings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStoreSettings(ctx, settings); err != nil {
			s.logger.Warn("Failed to cache store settings", zap.Error(err))
		}
	}
	return settings, nil
}

// UpdateStoreSettings applies a partial update and invalidates the cache
func (s *SiteContentService) UpdateStoreSettings(ctx context.Context, update sitecontent.StoreSettingsUpdate) (*sitecontent.StoreSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := settings.Apply(update); err != nil {
		return nil, err
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStoreSettings(ctx); err != nil {
			s.logger.Warn("Failed to invalidate store settings cache", zap.Error(err))
		}
	}

	s.logger.Info("Updated store settings", zap.Int64("settings_id", settings.ID))
	return settings, nil
}
