package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/payment"
)

// IntentInput contains the input for creating a payment intent. Amount is
// in currency units (pesos).
type IntentInput struct {
	Amount   decimal.Decimal
	Currency string
	Metadata map[string]string
}

// PaymentService creates payment intents for checkout
type PaymentService struct {
	gateway payment.IntentCreator
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(gateway payment.IntentCreator, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		logger:  logger,
	}
}

// CreateIntent validates the amount and creates an intent with the gateway
func (s *PaymentService) CreateIntent(ctx context.Context, input IntentInput) (*payment.Intent, error) {
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be a positive number")
	}

	intent, err := s.gateway.CreateIntent(ctx, input.Amount, input.Currency, input.Metadata)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created payment intent",
		zap.String("payment_intent_id", intent.ID),
		zap.String("amount", input.Amount.String()))
	return intent, nil
}
