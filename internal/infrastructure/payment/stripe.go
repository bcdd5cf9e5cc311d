package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/config"
)

// Intent is the slice of a Stripe PaymentIntent the storefront needs to
// confirm a card payment.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentCreator creates payment intents. Satisfied by StripeGateway and by
// test doubles.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*Intent, error)
}

// StripeGateway implements card payments through Stripe payment intents.
type StripeGateway struct {
	cfg    *config.StripeConfig
	logger *zap.Logger
}

// NewStripeGateway creates a Stripe gateway and binds the global API key.
func NewStripeGateway(cfg *config.StripeConfig, logger *zap.Logger) *StripeGateway {
	if cfg.Configured() {
		stripe.Key = cfg.SecretKey
	}
	return &StripeGateway{
		cfg:    cfg,
		logger: logger,
	}
}

// Configured reports whether the Stripe secret key is present.
func (g *StripeGateway) Configured() bool {
	return g.cfg.Configured()
}

// CreateIntent creates a payment intent for the given amount. The amount is
// in currency units (pesos), Stripe wants the smallest unit (centavos).
func (g *StripeGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*Intent, error) {
	if !g.Configured() {
		return nil, fmt.Errorf("stripe: secret key not configured: %w", shared.ErrUnavailable)
	}

	if currency == "" {
		currency = g.cfg.Currency
	}
	currency = strings.ToLower(currency)

	smallestUnit := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(smallestUnit),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if len(metadata) > 0 {
		params.Metadata = metadata
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("Failed to create Stripe payment intent",
			zap.String("currency", currency),
			zap.Int64("amount", smallestUnit),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", shared.ErrUpstream)
	}

	g.logger.Info("Created Stripe payment intent",
		zap.String("payment_intent_id", intent.ID),
		zap.String("currency", currency),
		zap.Int64("amount", smallestUnit))

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
