package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	tradeapp "github.com/gomu/backend/internal/application/trade"
	"github.com/gomu/backend/internal/domain/trade"
)

// SaleHandler handles checkout and order management endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// CreateSaleRequest is the checkout payload. Card fields are optional and
// only the last four digits survive into storage.
type CreateSaleRequest struct {
	CustomerName     string          `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerLastName string          `json:"customer_last_name" binding:"required,min=1,max=100"`
	Email            string          `json:"email" binding:"required,email"`
	Phone            string          `json:"phone" binding:"max=30"`
	Address          string          `json:"address" binding:"required,max=255"`
	City             string          `json:"city" binding:"required,max=100"`
	State            string          `json:"state" binding:"max=100"`
	PostalCode       string          `json:"postal_code" binding:"required,max=20"`
	Country          string          `json:"country" binding:"max=100"`
	PaymentMethod    string          `json:"payment_method" binding:"omitempty,oneof=card transfer cash"`
	CardNumber       string          `json:"card_number"`
	CardHolder       string          `json:"card_holder" binding:"max=100"`
	CardExpiration   string          `json:"card_expiration" binding:"omitempty,card_expiration"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	Shipping         decimal.Decimal `json:"shipping"`
	Total            decimal.Decimal `json:"total"`
	Items            datatypes.JSON  `json:"items" binding:"required"`
	Notes            string          `json:"notes"`
}

// ChangeStatusRequest is the request body for order status transitions
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// NotesRequest is the request body for updating order notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

// SaleResponse represents a sale in responses
type SaleResponse struct {
	ID               int64           `json:"id"`
	OrderNumber      string          `json:"order_number"`
	CustomerName     string          `json:"customer_name"`
	CustomerLastName string          `json:"customer_last_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	PostalCode       string          `json:"postal_code"`
	Country          string          `json:"country"`
	PaymentMethod    string          `json:"payment_method"`
	CardLast4        string          `json:"card_last4"`
	CardHolder       string          `json:"card_holder"`
	CardExpiration   string          `json:"card_expiration"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	Shipping         decimal.Decimal `json:"shipping"`
	Total            decimal.Decimal `json:"total"`
	Items            datatypes.JSON  `json:"items"`
	Notes            string          `json:"notes"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func newSaleResponse(sale *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:               sale.ID,
		OrderNumber:      sale.OrderNumber,
		CustomerName:     sale.CustomerName,
		CustomerLastName: sale.CustomerLastName,
		Email:            sale.Email,
		Phone:            sale.Phone,
		Address:          sale.Address,
		City:             sale.City,
		State:            sale.State,
		PostalCode:       sale.PostalCode,
		Country:          sale.Country,
		PaymentMethod:    sale.PaymentMethod,
		CardLast4:        sale.CardLast4,
		CardHolder:       sale.CardHolder,
		CardExpiration:   sale.CardExpiration,
		Subtotal:         sale.Subtotal,
		Discount:         sale.Discount,
		Shipping:         sale.Shipping,
		Total:            sale.Total,
		Items:            sale.Items,
		Notes:            sale.Notes,
		Status:           string(sale.Status),
		CreatedAt:        sale.CreatedAt,
		UpdatedAt:        sale.UpdatedAt,
	}
}

// Create handles POST /sales, the public checkout endpoint
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), trade.NewSaleParams{
		CustomerName:     req.CustomerName,
		CustomerLastName: req.CustomerLastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		PaymentMethod:    req.PaymentMethod,
		CardNumber:       req.CardNumber,
		CardHolder:       req.CardHolder,
		CardExpiration:   req.CardExpiration,
		Subtotal:         req.Subtotal,
		Discount:         req.Discount,
		Shipping:         req.Shipping,
		Total:            req.Total,
		Items:            req.Items,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newSaleResponse(sale))
}

// List handles GET /sales with status and date range filters
func (h *SaleHandler) List(c *gin.Context) {
	var filter trade.SaleFilter

	if raw := c.Query("status"); raw != "" {
		status := trade.SaleStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown status filter")
			return
		}
		filter.Status = &status
	}

	var err error
	if filter.StartDate, err = queryDate(c, "start_date"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.EndDate, err = queryDate(c, "end_date"); err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(c)
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, newSaleResponse(&sales[i]))
	}
	h.SuccessWithMeta(c, out, total, page, pageSize)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newSaleResponse(sale))
}

// GetByOrderNumber handles GET /sales/order/:orderNumber, the customer's
// order lookup
func (h *SaleHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	sale, err := h.saleService.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newSaleResponse(sale))
}

// ChangeStatus handles PATCH /sales/:id/status
func (h *SaleHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newSaleResponse(sale))
}

// SetNotes handles PATCH /sales/:id/notes
func (h *SaleHandler) SetNotes(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.SetNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newSaleResponse(sale))
}

// Delete handles DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Stats handles GET /sales/stats with an optional date range
func (h *SaleHandler) Stats(c *gin.Context) {
	startDate, err := queryDate(c, "start_date")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	endDate, err := queryDate(c, "end_date")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	stats, err := h.saleService.Stats(c.Request.Context(), startDate, endDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
