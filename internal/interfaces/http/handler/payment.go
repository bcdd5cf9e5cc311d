package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentapp "github.com/gomu/backend/internal/application/payment"
)

// PaymentHandler handles payment intent creation
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntentRequest is the request body for POST /payments/intent
type CreateIntentRequest struct {
	Amount   decimal.Decimal   `json:"amount" binding:"required"`
	Currency string            `json:"currency" binding:"omitempty,len=3"`
	Metadata map[string]string `json:"metadata"`
}

// IntentResponse carries what the storefront needs to confirm the payment
type IntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreateIntent handles POST /payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), paymentapp.IntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, IntentResponse{ID: intent.ID, ClientSecret: intent.ClientSecret})
}
