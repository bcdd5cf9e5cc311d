package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
)

// WholesaleHandler handles wholesale pricing tier endpoints
type WholesaleHandler struct {
	BaseHandler
	wholesaleService *catalogapp.WholesaleService
}

// NewWholesaleHandler creates a new WholesaleHandler
func NewWholesaleHandler(wholesaleService *catalogapp.WholesaleService) *WholesaleHandler {
	return &WholesaleHandler{wholesaleService: wholesaleService}
}

// WholesaleTierRequest is the request body for creating or updating a tier
type WholesaleTierRequest struct {
	ProductID   int64            `json:"product_id" binding:"required,min=1"`
	MinQuantity int              `json:"min_quantity" binding:"required,min=2"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	Active      *bool            `json:"active"`
}

// PriceQuoteResponse is the unit price resolved for a quantity
type PriceQuoteResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ListForProduct handles GET /products/:id/wholesale-tiers
func (h *WholesaleHandler) ListForProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	tiers, err := h.wholesaleService.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]WholesaleTierResponse, 0, len(tiers))
	for i := range tiers {
		out = append(out, newWholesaleTierResponse(&tiers[i]))
	}
	h.Success(c, out)
}

// PriceFor handles GET /products/:id/price?quantity=N, resolving the
// wholesale unit price for a quantity
func (h *WholesaleHandler) PriceFor(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		h.BadRequest(c, "quantity must be a positive integer")
		return
	}

	unitPrice, err := h.wholesaleService.PriceFor(c.Request.Context(), productID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PriceQuoteResponse{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	})
}

// Create handles POST /wholesale-tiers
func (h *WholesaleHandler) Create(c *gin.Context) {
	var req WholesaleTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tier, err := h.wholesaleService.Create(c.Request.Context(), catalogapp.WholesaleTierInput{
		ProductID:   req.ProductID,
		MinQuantity: req.MinQuantity,
		UnitPrice:   req.UnitPrice,
		Discount:    req.Discount,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newWholesaleTierResponse(tier))
}

// Update handles PUT /wholesale-tiers/:id
func (h *WholesaleHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req WholesaleTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tier, err := h.wholesaleService.Update(c.Request.Context(), id, catalogapp.WholesaleTierInput{
		ProductID:   req.ProductID,
		MinQuantity: req.MinQuantity,
		UnitPrice:   req.UnitPrice,
		Discount:    req.Discount,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newWholesaleTierResponse(tier))
}

// Delete handles DELETE /wholesale-tiers/:id
func (h *WholesaleHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.wholesaleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
