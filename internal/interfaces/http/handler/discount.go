package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
)

// DiscountHandler handles discount endpoints
type DiscountHandler struct {
	BaseHandler
	discountService *catalogapp.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService *catalogapp.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// DiscountRequest is the request body for creating or updating a discount
type DiscountRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=100"`
	Scope      string          `json:"scope" binding:"required,oneof=global category product"`
	Percent    decimal.Decimal `json:"percent"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
	EndDate    time.Time       `json:"end_date" binding:"required"`
	CategoryID *int64          `json:"category_id"`
	ProductID  *int64          `json:"product_id"`
	Active     *bool           `json:"active"`
}

func (r DiscountRequest) input() catalogapp.DiscountInput {
	return catalogapp.DiscountInput{
		Name:       r.Name,
		Scope:      r.Scope,
		Percent:    r.Percent,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		CategoryID: r.CategoryID,
		ProductID:  r.ProductID,
		Active:     r.Active,
	}
}

// List handles GET /discounts. current=true narrows to discounts active
// right now, which is what the storefront asks for.
func (h *DiscountHandler) List(c *gin.Context) {
	current, err := queryBool(c, "current")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var discounts []DiscountResponse
	if current != nil && *current {
		items, err := h.discountService.ListCurrent(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		discounts = make([]DiscountResponse, 0, len(items))
		for i := range items {
			discounts = append(discounts, newDiscountResponse(&items[i]))
		}
	} else {
		items, err := h.discountService.List(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		discounts = make([]DiscountResponse, 0, len(items))
		for i := range items {
			discounts = append(discounts, newDiscountResponse(&items[i]))
		}
	}

	h.Success(c, discounts)
}

// Get handles GET /discounts/:id
func (h *DiscountHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	discount, err := h.discountService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newDiscountResponse(discount))
}

// Create handles POST /discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newDiscountResponse(discount))
}

// Update handles PUT /discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newDiscountResponse(discount))
}

// Delete handles DELETE /discounts/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.discountService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
