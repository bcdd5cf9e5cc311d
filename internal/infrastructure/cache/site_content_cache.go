package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/sitecontent"
)

const (
	pageConfigKey    = "site:page_config"
	storeSettingsKey = "site:store_settings"
)

// RedisSiteContentCache caches the storefront singletons in Redis so the
// public home page does not hit Postgres on every load. A cache miss is
// (nil, nil); callers fall through to the repository.
type RedisSiteContentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSiteContentCache creates a cache backed by an existing Redis
// client. The caller retains ownership of the client.
func NewRedisSiteContentCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSiteContentCache {
	return &RedisSiteContentCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPageConfig retrieves the cached page configuration, if any.
func (c *RedisSiteContentCache) GetPageConfig(ctx context.Context) (*sitecontent.PageConfig, error) {
	var config sitecontent.PageConfig
	if ok, err := c.get(ctx, pageConfigKey, &config); !ok {
		return nil, err
	}
	return &config, nil
}

// SetPageConfig stores the page configuration with the configured TTL.
func (c *RedisSiteContentCache) SetPageConfig(ctx context.Context, config *sitecontent.PageConfig) error {
	return c.set(ctx, pageConfigKey, config)
}

// InvalidatePageConfig drops the cached page configuration.
func (c *RedisSiteContentCache) InvalidatePageConfig(ctx context.Context) error {
	return c.invalidate(ctx, pageConfigKey)
}

// GetStoreSettings retrieves the cached store settings, if any.
func (c *RedisSiteContentCache) GetStoreSettings(ctx context.Context) (*sitecontent.StoreSettings, error) {
	var settings sitecontent.StoreSettings
	if ok, err := c.get(ctx, storeSettingsKey, &settings); !ok {
		return nil, err
	}
	return &settings, nil
}

// SetStoreSettings stores the store settings with the configured TTL.
func (c *RedisSiteContentCache) SetStoreSettings(ctx context.Context, settings *sitecontent.StoreSettings) error {
	return c.set(ctx, storeSettingsKey, settings)
}

// InvalidateStoreSettings drops the cached store settings.
func (c *RedisSiteContentCache) InvalidateStoreSettings(ctx context.Context) error {
	return c.invalidate(ctx, storeSettingsKey)
}

func (c *RedisSiteContentCache) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Site content cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		c.logger.Error("Failed to read site content cache",
			zap.String("key", key),
			zap.Error(err))
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A corrupt entry is treated as a miss so the repository can
		// repopulate it.
		c.logger.Warn("Dropping corrupt site content cache entry",
			zap.String("key", key),
			zap.Error(err))
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *RedisSiteContentCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to write site content cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *RedisSiteContentCache) invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to invalidate site content cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate cache key %s: %w", key, err)
	}
	return nil
}
