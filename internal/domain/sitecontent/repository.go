package sitecontent

import (
	"context"
)

// PageConfigRepository is the persistence port for the page configuration
// singleton
type PageConfigRepository interface {
	// Get returns the configuration row, creating it with defaults when
	// none exists yet
	Get(ctx context.Context) (*PageConfig, error)
	Save(ctx context.Context, config *PageConfig) error
}

// StoreSettingsRepository is the persistence port for the store settings
// singleton
type StoreSettingsRepository interface {
	Get(ctx context.Context) (*StoreSettings, error)
	Save(ctx context.Context, settings *StoreSettings) error
}
