package sitecontent

import (
	"github.com/gomu/backend/internal/domain/shared"
)

// StoreSettings holds store-wide operational settings. Like PageConfig it
// is a singleton row created on first read.
type StoreSettings struct {
	shared.BaseEntity
	StoreName            string `gorm:"type:varchar(100);not null"`
	ContactEmail         string `gorm:"type:varchar(255)"`
	Phone                string `gorm:"type:varchar(30)"`
	Address              string `gorm:"type:varchar(255)"`
	LowStockAlerts       bool   `gorm:"not null;default:true"`
	MinStock             int    `gorm:"not null;default:5"`
	AutoInventoryUpdate  bool   `gorm:"not null;default:true"`
	EmailNotifications   bool   `gorm:"not null;default:true"`
	NewOrderNotification bool   `gorm:"not null;default:true"`
	OutOfStockAlert      bool   `gorm:"not null;default:true"`
	WeeklyReports        bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultStoreSettings returns the settings used when none exist yet
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		BaseEntity:           shared.NewBaseEntity(),
		StoreName:            "Tienda de Llaveros",
		LowStockAlerts:       true,
		MinStock:             5,
		AutoInventoryUpdate:  true,
		EmailNotifications:   true,
		NewOrderNotification: true,
		OutOfStockAlert:      true,
	}
}

// StoreSettingsUpdate carries partial updates: nil fields are untouched
type StoreSettingsUpdate struct {
	StoreName            *string
	ContactEmail         *string
	Phone                *string
	Address              *string
	LowStockAlerts       *bool
	MinStock             *int
	AutoInventoryUpdate  *bool
	EmailNotifications   *bool
	NewOrderNotification *bool
	OutOfStockAlert      *bool
	WeeklyReports        *bool
}

// Apply merges a partial update into the settings
func (s *StoreSettings) Apply(update StoreSettingsUpdate) error {
	if update.StoreName != nil {
		if *update.StoreName == "" {
			return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
		}
		s.StoreName = *update.StoreName
	}
	if update.ContactEmail != nil {
		s.ContactEmail = *update.ContactEmail
	}
	if update.Phone != nil {
		s.Phone = *update.Phone
	}
	if update.Address != nil {
		s.Address = *update.Address
	}
	if update.LowStockAlerts != nil {
		s.LowStockAlerts = *update.LowStockAlerts
	}
	if update.MinStock != nil {
		if *update.MinStock < 0 {
			return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
		}
		s.MinStock = *update.MinStock
	}
	if update.AutoInventoryUpdate != nil {
		s.AutoInventoryUpdate = *update.AutoInventoryUpdate
	}
	if update.EmailNotifications != nil {
		s.EmailNotifications = *update.EmailNotifications
	}
	if update.NewOrderNotification != nil {
		s.NewOrderNotification = *update.NewOrderNotification
	}
	if update.OutOfStockAlert != nil {
		s.OutOfStockAlert = *update.OutOfStockAlert
	}
	if update.WeeklyReports != nil {
		s.WeeklyReports = *update.WeeklyReports
	}
	s.Touch()
	return nil
}
