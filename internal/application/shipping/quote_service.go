package shipping

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/shipping"
)

// Per-unit defaults used until products carry their own shipping data
const (
	defaultWeightPerUnitKg  = 0.2
	defaultVolumePerUnitCm3 = 1000.0
)

// RateProvider quotes carrier rates for a parcel. Implemented by the
// Skydropx client.
type RateProvider interface {
	Configured() bool
	Quote(ctx context.Context, destination shipping.Address, parcel shipping.Parcel) ([]shipping.Rate, error)
}

// QuoteItem is one cart line for quoting purposes
type QuoteItem struct {
	ProductID int64
	Quantity  int
}

// DestinationInput is the customer-entered shipping destination. Optional
// fields get aggregator-safe placeholders.
type DestinationInput struct {
	ZipCode        string
	State          string
	Municipality   string
	Neighborhood   string
	StreetAddress  string
	ExternalNumber string
	ContactName    string
	ContactPhone   string
	ContactEmail   string
}

// PackageSummary describes the single box the cart was collapsed into
type PackageSummary struct {
	TotalWeightKg  float64 `json:"totalWeightKg"`
	TotalVolumeCm3 float64 `json:"totalVolumeCm3"`
	BoxSideCm      int     `json:"boxSideCm"`
}

// QuoteInput contains the input for a shipping quote
type QuoteInput struct {
	Items       []QuoteItem
	Destination DestinationInput
}

// QuoteResult is the normalized carrier rates plus the computed package
type QuoteResult struct {
	Rates   []shipping.Rate
	Package PackageSummary
}

// QuoteService turns a cart and destination into carrier rate quotes
type QuoteService struct {
	provider RateProvider
	logger   *zap.Logger
}

// NewQuoteService creates a new shipping quote service
func NewQuoteService(provider RateProvider, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		provider: provider,
		logger:   logger,
	}
}

// Quote computes the cart's parcel and fetches carrier rates for it
func (s *QuoteService) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("MISSING_ITEMS", "Cart items are required to quote shipping")
	}
	if strings.TrimSpace(input.Destination.ZipCode) == "" || strings.TrimSpace(input.Destination.State) == "" {
		return nil, shared.NewDomainError("MISSING_ADDRESS", "Destination postal code and state are required")
	}
	if !s.provider.Configured() {
		return nil, shared.ErrUnavailable
	}

	parcel, summary := computeParcel(input.Items)
	destination := mapDestination(input.Destination)

	rates, err := s.provider.Quote(ctx, destination, parcel)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quoted shipping",
		zap.Int("rates", len(rates)),
		zap.Float64("weight_kg", summary.TotalWeightKg),
		zap.Int("box_side_cm", summary.BoxSideCm))

	return &QuoteResult{Rates: rates, Package: summary}, nil
}

// computeParcel collapses the cart into a single cube-ish box using
// per-unit defaults
func computeParcel(items []QuoteItem) (shipping.Parcel, PackageSummary) {
	var totalWeight, totalVolume float64
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		totalWeight += defaultWeightPerUnitKg * float64(quantity)
		totalVolume += defaultVolumePerUnitCm3 * float64(quantity)
	}
	if totalWeight <= 0 {
		totalWeight = 1
	}
	if totalVolume <= 0 {
		totalVolume = defaultVolumePerUnitCm3
	}

	side := int(math.Ceil(math.Cbrt(totalVolume)))
	if side < 1 {
		side = 1
	}

	parcel := shipping.Parcel{
		Length: side,
		Width:  side,
		Height: side,
		Weight: math.Max(0.1, totalWeight),
	}
	summary := PackageSummary{
		TotalWeightKg:  totalWeight,
		TotalVolumeCm3: totalVolume,
		BoxSideCm:      side,
	}
	return parcel, summary
}

// mapDestination converts customer input into the aggregator's address
// shape, substituting placeholders for optional fields it requires
func mapDestination(input DestinationInput) shipping.Address {
	street := strings.TrimSpace(strings.Join(nonEmpty(
		strings.TrimSpace(input.StreetAddress),
		strings.TrimSpace(input.ExternalNumber)), " "))

	return shipping.Address{
		CountryCode:  "mx",
		PostalCode:   strings.TrimSpace(input.ZipCode),
		State:        strings.TrimSpace(input.State),
		Municipality: fallback(strings.TrimSpace(input.Municipality), "No especificado"),
		Neighborhood: fallback(strings.TrimSpace(input.Neighborhood), "Centro"),
		Street:       fallback(street, "Calle por definir"),
		Name:         fallback(strings.TrimSpace(input.ContactName), "Cliente"),
		Company:      "Cliente",
		Phone:        fallback(strings.TrimSpace(input.ContactPhone), "0000000000"),
		Email:        fallback(strings.TrimSpace(input.ContactEmail), "cliente@example.com"),
	}
}

func fallback(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
