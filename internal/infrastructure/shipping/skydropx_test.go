package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/config"
)

func testShippingConfig(baseURL string) *config.ShippingConfig {
	return &config.ShippingConfig{
		BaseURL:          baseURL,
		ClientID:         "client",
		ClientSecret:     "secret",
		OriginPostalCode: "39000",
		OriginState:      "Guerrero",
		OriginCity:       "Chilpancingo",
		OriginCountry:    "MX",
		Carriers:         []string{"fedex", "dhl"},
		RequestTimeout:   2 * time.Second,
		PollAttempts:     3,
		PollInterval:     time.Millisecond,
	}
}

func TestClientQuote(t *testing.T) {
	var polls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})
	mux.HandleFunc("/api/v1/quotations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		var req quotationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mx", req.Quotation.AddressFrom.CountryCode)
		assert.Equal(t, []string{"fedex", "dhl"}, req.Quotation.RequestedCarriers)
		json.NewEncoder(w).Encode(map[string]string{"id": "q-1"})
	})
	mux.HandleFunc("/api/v1/quotations/q-1", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls == 1 {
			json.NewEncoder(w).Encode(map[string]any{"id": "q-1", "rates": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": "q-1",
			"rates": []map[string]any{
				{
					"id": "r-1",
					"attributes": map[string]any{
						"total_price":   "150.50",
						"carrier":       "fedex",
						"service":       "express",
						"delivery_days": 2,
					},
				},
				{
					"carrier_name": "dhl",
					"service_name": "standard",
					"price":        99.9,
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testShippingConfig(server.URL), zap.NewNop())
	rates, err := client.Quote(context.Background(), Address{PostalCode: "06000", State: "CDMX"}, Parcel{Length: 10, Width: 10, Height: 10, Weight: 0.4})
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.Equal(t, "r-1", rates[0].ID)
	assert.Equal(t, "fedex", rates[0].Carrier)
	assert.Equal(t, "express", rates[0].Service)
	assert.True(t, rates[0].Price.Equal(decimalFromString(t, "150.50")))
	assert.Equal(t, "2", rates[0].DeliveryDays)

	// Flat shape without an id falls back to a positional one.
	assert.Equal(t, "rate-1", rates[1].ID)
	assert.Equal(t, "dhl", rates[1].Carrier)
	assert.Equal(t, "standard", rates[1].Service)
	assert.True(t, rates[1].Price.Equal(decimalFromString(t, "99.9")))
	assert.Equal(t, 2, polls, "should have retried until rates appeared")
}

func TestClientQuoteUnconfigured(t *testing.T) {
	cfg := testShippingConfig("http://unused")
	cfg.ClientID = ""
	client := NewClient(cfg, zap.NewNop())

	_, err := client.Quote(context.Background(), Address{}, Parcel{})
	assert.True(t, errors.Is(err, shared.ErrUnavailable))
}

func TestClientQuoteAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testShippingConfig(server.URL), zap.NewNop())
	_, err := client.Quote(context.Background(), Address{}, Parcel{})
	assert.True(t, errors.Is(err, shared.ErrUpstream))
}

func TestClientQuoteNoRates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/api/v1/quotations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "q-2"})
	})
	mux.HandleFunc("/api/v1/quotations/q-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "q-2"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testShippingConfig(server.URL), zap.NewNop())
	_, err := client.Quote(context.Background(), Address{}, Parcel{})
	assert.True(t, errors.Is(err, shared.ErrUpstream))
}

func TestRatePayloadNormalizeFallbacks(t *testing.T) {
	var payload ratePayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "abc",
		"attributes": {"amount": 12, "carrier_name": " Estafeta ", "name": "Terrestre", "estimated_days": "3-5"}
	}`), &payload))

	rate := payload.normalize(0)
	assert.Equal(t, "abc", rate.ID)
	assert.Equal(t, "Estafeta", rate.Carrier)
	assert.Equal(t, "Terrestre", rate.Service)
	assert.True(t, rate.Price.Equal(decimalFromString(t, "12")))
	assert.Equal(t, "3-5", rate.DeliveryDays)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return parsed
}
