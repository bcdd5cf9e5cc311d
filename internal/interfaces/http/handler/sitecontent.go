package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	sitecontentapp "github.com/gomu/backend/internal/application/sitecontent"
	"github.com/gomu/backend/internal/domain/sitecontent"
)

// SiteContentHandler serves the storefront page configuration and the
// store-wide settings singletons
type SiteContentHandler struct {
	BaseHandler
	service *sitecontentapp.SiteContentService
}

// NewSiteContentHandler creates a new SiteContentHandler
func NewSiteContentHandler(service *sitecontentapp.SiteContentService) *SiteContentHandler {
	return &SiteContentHandler{service: service}
}

// UpdatePageConfigRequest is a partial update, omitted fields keep their value
type UpdatePageConfigRequest struct {
	TopProducts       *datatypes.JSON `json:"top_products"`
	NewArrivals       *datatypes.JSON `json:"new_arrivals"`
	BestSellers       *datatypes.JSON `json:"best_sellers"`
	MainSliderBanners *datatypes.JSON `json:"main_slider_banners"`
	SecondarySlider   *datatypes.JSON `json:"secondary_slider"`
	TopbarText        *string         `json:"topbar_text"`
	TopbarBackground  *string         `json:"topbar_background"`
	TopbarTextColor   *string         `json:"topbar_text_color"`
	TopbarVisible     *bool           `json:"topbar_visible"`
}

// UpdateStoreSettingsRequest is a partial update, omitted fields keep their value
type UpdateStoreSettingsRequest struct {
	StoreName            *string `json:"store_name" binding:"omitempty,max=100"`
	ContactEmail         *string `json:"contact_email" binding:"omitempty,email"`
	Phone                *string `json:"phone" binding:"omitempty,max=30"`
	Address              *string `json:"address" binding:"omitempty,max=255"`
	LowStockAlerts       *bool   `json:"low_stock_alerts"`
	MinStock             *int    `json:"min_stock" binding:"omitempty,min=0"`
	AutoInventoryUpdate  *bool   `json:"auto_inventory_update"`
	EmailNotifications   *bool   `json:"email_notifications"`
	NewOrderNotification *bool   `json:"new_order_notification"`
	OutOfStockAlert      *bool   `json:"out_of_stock_alert"`
	WeeklyReports        *bool   `json:"weekly_reports"`
}

// PageConfigResponse represents the page configuration in responses
type PageConfigResponse struct {
	TopProducts       datatypes.JSON `json:"top_products"`
	NewArrivals       datatypes.JSON `json:"new_arrivals"`
	BestSellers       datatypes.JSON `json:"best_sellers"`
	MainSliderBanners datatypes.JSON `json:"main_slider_banners"`
	SecondarySlider   datatypes.JSON `json:"secondary_slider"`
	TopbarText        string         `json:"topbar_text"`
	TopbarBackground  string         `json:"topbar_background"`
	TopbarTextColor   string         `json:"topbar_text_color"`
	TopbarVisible     bool           `json:"topbar_visible"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func newPageConfigResponse(cfg *sitecontent.PageConfig) PageConfigResponse {
	return PageConfigResponse{
		TopProducts:       cfg.TopProducts,
		NewArrivals:       cfg.NewArrivals,
		BestSellers:       cfg.BestSellers,
		MainSliderBanners: cfg.MainSliderBanners,
		SecondarySlider:   cfg.SecondarySlider,
		TopbarText:        cfg.TopbarText,
		TopbarBackground:  cfg.TopbarBackground,
		TopbarTextColor:   cfg.TopbarTextColor,
		TopbarVisible:     cfg.TopbarVisible,
		UpdatedAt:         cfg.UpdatedAt,
	}
}

// StoreSettingsResponse represents the store settings in responses
type StoreSettingsResponse struct {
	StoreName            string    `json:"store_name"`
	ContactEmail         string    `json:"contact_email"`
	Phone                string    `json:"phone"`
	Address              string    `json:"address"`
	LowStockAlerts       bool      `json:"low_stock_alerts"`
	MinStock             int       `json:"min_stock"`
	AutoInventoryUpdate  bool      `json:"auto_inventory_update"`
	EmailNotifications   bool      `json:"email_notifications"`
	NewOrderNotification bool      `json:"new_order_notification"`
	OutOfStockAlert      bool      `json:"out_of_stock_alert"`
	WeeklyReports        bool      `json:"weekly_reports"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newStoreSettingsResponse(settings *sitecontent.StoreSettings) StoreSettingsResponse {
	return StoreSettingsResponse{
		StoreName:            settings.StoreName,
		ContactEmail:         settings.ContactEmail,
		Phone:                settings.Phone,
		Address:              settings.Address,
		LowStockAlerts:       settings.LowStockAlerts,
		MinStock:             settings.MinStock,
		AutoInventoryUpdate:  settings.AutoInventoryUpdate,
		EmailNotifications:   settings.EmailNotifications,
		NewOrderNotification: settings.NewOrderNotification,
		OutOfStockAlert:      settings.OutOfStockAlert,
		WeeklyReports:        settings.WeeklyReports,
		UpdatedAt:            settings.UpdatedAt,
	}
}

// GetPageConfig handles GET /page-config
func (h *SiteContentHandler) GetPageConfig(c *gin.Context) {
	cfg, err := h.service.GetPageConfig(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newPageConfigResponse(cfg))
}

// UpdatePageConfig handles PUT /page-config
func (h *SiteContentHandler) UpdatePageConfig(c *gin.Context) {
	var req UpdatePageConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.service.UpdatePageConfig(c.Request.Context(), sitecontent.PageConfigUpdate{
		TopProducts:       req.TopProducts,
		NewArrivals:       req.NewArrivals,
		BestSellers:       req.BestSellers,
		MainSliderBanners: req.MainSliderBanners,
		SecondarySlider:   req.SecondarySlider,
		TopbarText:        req.TopbarText,
		TopbarBackground:  req.TopbarBackground,
		TopbarTextColor:   req.TopbarTextColor,
		TopbarVisible:     req.TopbarVisible,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newPageConfigResponse(cfg))
}

// GetStoreSettings handles GET /settings
func (h *SiteContentHandler) GetStoreSettings(c *gin.Context) {
	settings, err := h.service.GetStoreSettings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newStoreSettingsResponse(settings))
}

// UpdateStoreSettings handles PUT /settings
func (h *SiteContentHandler) UpdateStoreSettings(c *gin.Context) {
	var req UpdateStoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.service.UpdateStoreSettings(c.Request.Context(), sitecontent.StoreSettingsUpdate{
		StoreName:            req.StoreName,
		ContactEmail:         req.ContactEmail,
		Phone:                req.Phone,
		Address:              req.Address,
		LowStockAlerts:       req.LowStockAlerts,
		MinStock:             req.MinStock,
		AutoInventoryUpdate:  req.AutoInventoryUpdate,
		EmailNotifications:   req.EmailNotifications,
		NewOrderNotification: req.NewOrderNotification,
		OutOfStockAlert:      req.OutOfStockAlert,
		WeeklyReports:        req.WeeklyReports,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newStoreSettingsResponse(settings))
}
