package handler

import (
	"github.com/gin-gonic/gin"

	shippingapp "github.com/gomu/backend/internal/application/shipping"
	"github.com/gomu/backend/internal/infrastructure/shipping"
)

// ShippingHandler handles shipping quote requests
type ShippingHandler struct {
	BaseHandler
	quoteService *shippingapp.QuoteService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(quoteService *shippingapp.QuoteService) *ShippingHandler {
	return &ShippingHandler{quoteService: quoteService}
}

// QuoteItemRequest is one cart line in a quote request
type QuoteItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// QuoteDestinationRequest is the customer-entered destination
type QuoteDestinationRequest struct {
	ZipCode        string `json:"zip_code" binding:"required,min=4,max=10"`
	State          string `json:"state"`
	Municipality   string `json:"municipality"`
	Neighborhood   string `json:"neighborhood"`
	StreetAddress  string `json:"street_address"`
	ExternalNumber string `json:"external_number"`
	ContactName    string `json:"contact_name"`
	ContactPhone   string `json:"contact_phone"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email"`
}

// QuoteRequest is the request body for POST /shipping/quote
type QuoteRequest struct {
	Items       []QuoteItemRequest      `json:"items" binding:"required,min=1,dive"`
	Destination QuoteDestinationRequest `json:"destination" binding:"required"`
}

// QuoteResponse carries the carrier rates and the computed package
type QuoteResponse struct {
	Rates   []shipping.Rate            `json:"rates"`
	Package shippingapp.PackageSummary `json:"package"`
}

// Quote handles POST /shipping/quote
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]shippingapp.QuoteItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, shippingapp.QuoteItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.quoteService.Quote(c.Request.Context(), shippingapp.QuoteInput{
		Items: items,
		Destination: shippingapp.DestinationInput{
			ZipCode:        req.Destination.ZipCode,
			State:          req.Destination.State,
			Municipality:   req.Destination.Municipality,
			Neighborhood:   req.Destination.Neighborhood,
			StreetAddress:  req.Destination.StreetAddress,
			ExternalNumber: req.Destination.ExternalNumber,
			ContactName:    req.Destination.ContactName,
			ContactPhone:   req.Destination.ContactPhone,
			ContactEmail:   req.Destination.ContactEmail,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, QuoteResponse{Rates: result.Rates, Package: result.Package})
}
