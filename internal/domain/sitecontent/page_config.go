package sitecontent

import (
	"github.com/gomu/backend/internal/domain/shared"
	"gorm.io/datatypes"
)

// PageConfig is the storefront home page configuration. A single row
// exists; readers create it with defaults when missing.
type PageConfig struct {
	shared.BaseEntity
	// Product ID lists for each curated section
	TopProducts        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	NewArrivals        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	BestSellers        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	MainSliderBanners  datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	SecondarySlider    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	TopbarText         string         `gorm:"type:varchar(200);not null"`
	TopbarBackground   string         `gorm:"type:varchar(20);not null"`
	TopbarTextColor    string         `gorm:"type:varchar(20);not null"`
	TopbarVisible      bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PageConfig) TableName() string {
	return "page_configs"
}

// DefaultPageConfig returns the configuration used when none exists yet
func DefaultPageConfig() *PageConfig {
	empty := datatypes.JSON(`[]`)
	return &PageConfig{
		BaseEntity:        shared.NewBaseEntity(),
		TopProducts:       empty,
		NewArrivals:       empty,
		BestSellers:       empty,
		MainSliderBanners: empty,
		SecondarySlider:   empty,
		TopbarText:        "ENVÍO GRATIS SOBRE $599",
		TopbarBackground:  "#FF69B4",
		TopbarTextColor:   "#000000",
		TopbarVisible:     true,
	}
}

// PageConfigUpdate carries partial updates: nil fields are left untouched
type PageConfigUpdate struct {
	TopProducts       *datatypes.JSON
	NewArrivals       *datatypes.JSON
	BestSellers       *datatypes.JSON
	MainSliderBanners *datatypes.JSON
	SecondarySlider   *datatypes.JSON
	TopbarText        *string
	TopbarBackground  *string
	TopbarTextColor   *string
	TopbarVisible     *bool
}

// Apply merges a partial update into the configuration
func (c *PageConfig) Apply(update PageConfigUpdate) {
	if update.TopProducts != nil {
		c.TopProducts = *update.TopProducts
	}
	if update.NewArrivals != nil {
		c.NewArrivals = *update.NewArrivals
	}
	if update.BestSellers != nil {
		c.BestSellers = *update.BestSellers
	}
	if update.MainSliderBanners != nil {
		c.MainSliderBanners = *update.MainSliderBanners
	}
	if update.SecondarySlider != nil {
		c.SecondarySlider = *update.SecondarySlider
	}
	if update.TopbarText != nil {
		c.TopbarText = *update.TopbarText
	}
	if update.TopbarBackground != nil {
		c.TopbarBackground = *update.TopbarBackground
	}
	if update.TopbarTextColor != nil {
		c.TopbarTextColor = *update.TopbarTextColor
	}
	if update.TopbarVisible != nil {
		c.TopbarVisible = *update.TopbarVisible
	}
	c.Touch()
}
