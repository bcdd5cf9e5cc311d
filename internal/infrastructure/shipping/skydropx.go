package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/config"
)

// Client talks to the Skydropx shipping aggregator. Quotations are
// asynchronous on their side: create one, then poll until rates show up.
type Client struct {
	cfg    *config.ShippingConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Skydropx client from shipping configuration.
func NewClient(cfg *config.ShippingConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
	}
}

// Configured reports whether aggregator credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

// Origin returns the store's ship-from address.
func (c *Client) Origin() Address {
	return Address{
		CountryCode:  strings.ToLower(c.cfg.OriginCountry),
		PostalCode:   c.cfg.OriginPostalCode,
		State:        c.cfg.OriginState,
		Municipality: c.cfg.OriginCity,
		Neighborhood: c.cfg.OriginNeighborhood,
		Street:       c.cfg.OriginStreet,
		Name:         c.cfg.OriginName,
		Company:      c.cfg.OriginCompany,
		Phone:        c.cfg.OriginPhone,
		Email:        c.cfg.OriginEmail,
	}
}

// Quote runs the full quotation flow against the aggregator and returns
// normalized rates. It returns shared.ErrUnavailable when credentials are
// missing and shared.ErrUpstream when the aggregator misbehaves.
func (c *Client) Quote(ctx context.Context, destination Address, parcel Parcel) ([]Rate, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("skydropx: credentials not configured: %w", shared.ErrUnavailable)
	}

	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	quotationID, err := c.createQuotation(ctx, token, destination, parcel)
	if err != nil {
		return nil, err
	}

	return c.pollQuotation(ctx, token, quotationID)
}

// authenticate exchanges client credentials for a bearer token.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("skydropx: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token tokenResponse
	if err := c.do(req, &token); err != nil {
		c.logger.Error("Skydropx authentication failed", zap.Error(err))
		return "", fmt.Errorf("skydropx: authentication failed: %w", shared.ErrUpstream)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("skydropx: empty access token: %w", shared.ErrUpstream)
	}
	return token.AccessToken, nil
}

// createQuotation submits a quotation and returns its identifier.
func (c *Client) createQuotation(ctx context.Context, token string, destination Address, parcel Parcel) (string, error) {
	payload := quotationRequest{
		Quotation: quotationBody{
			AddressFrom:       c.Origin(),
			AddressTo:         destination,
			Parcel:            parcel,
			RequestedCarriers: c.cfg.Carriers,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("skydropx: encode quotation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v1/quotations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("skydropx: build quotation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var created quotationResponse
	if err := c.do(req, &created); err != nil {
		c.logger.Error("Skydropx quotation create failed", zap.Error(err))
		return "", fmt.Errorf("skydropx: quotation create failed: %w", shared.ErrUpstream)
	}
	if created.ID == "" {
		return "", fmt.Errorf("skydropx: quotation created without id: %w", shared.ErrUpstream)
	}
	return created.ID, nil
}

// pollQuotation fetches the quotation until rates appear or attempts run out.
// A quotation that never produces rates is treated as an upstream failure.
func (c *Client) pollQuotation(ctx context.Context, token, quotationID string) ([]Rate, error) {
	attempts := c.cfg.PollAttempts
	if attempts < 1 {
		attempts = 1
	}

	var payloads []ratePayload
	for attempt := 0; attempt < attempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/v1/quotations/"+url.PathEscape(quotationID), nil)
		if err != nil {
			return nil, fmt.Errorf("skydropx: build poll request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		var quotation quotationResponse
		if err := c.do(req, &quotation); err != nil {
			c.logger.Error("Skydropx quotation poll failed",
				zap.String("quotation_id", quotationID),
				zap.Error(err))
			return nil, fmt.Errorf("skydropx: quotation poll failed: %w", shared.ErrUpstream)
		}

		payloads = quotation.ratePayloads()
		if len(payloads) > 0 {
			break
		}
		c.logger.Debug("Skydropx quotation not ready",
			zap.String("quotation_id", quotationID),
			zap.Int("attempt", attempt+1))
	}

	if len(payloads) == 0 {
		return nil, fmt.Errorf("skydropx: quotation %s produced no rates: %w", quotationID, shared.ErrUpstream)
	}

	rates := make([]Rate, 0, len(payloads))
	for i, p := range payloads {
		rates = append(rates, p.normalize(i))
	}
	return rates, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
