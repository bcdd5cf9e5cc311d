package shipping

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Address is the Skydropx address representation used on both ends of a
// quotation.
type Address struct {
	CountryCode  string `json:"country_code"`
	PostalCode   string `json:"postal_code"`
	State        string `json:"area_level1"`
	Municipality string `json:"area_level2"`
	Neighborhood string `json:"area_level3"`
	Street       string `json:"street1"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Parcel describes the single box a cart collapses into. Dimensions are
// centimeters, weight is kilograms.
type Parcel struct {
	Length int     `json:"length"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Weight float64 `json:"weight"`
}

// Rate is a normalized carrier quote. The aggregator returns rates in more
// than one shape, so normalization happens before anything leaves this
// package.
type Rate struct {
	ID           string          `json:"id"`
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays string          `json:"deliveryDays"`
}

// flexString unmarshals either a JSON string or a JSON number into a string.
// Skydropx is not consistent about which one it sends for prices and
// delivery-day estimates.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// rateFields carries every field name the aggregator has been observed to use
// for a rate, so the same struct can decode both the flat and the
// attribute-wrapped shape.
type rateFields struct {
	ID                    string     `json:"id"`
	TotalPrice            flexString `json:"total_price"`
	Price                 flexString `json:"price"`
	Amount                flexString `json:"amount"`
	Carrier               string     `json:"carrier"`
	CarrierName           string     `json:"carrier_name"`
	Service               string     `json:"service"`
	ServiceName           string     `json:"service_name"`
	Name                  string     `json:"name"`
	DeliveryDays          flexString `json:"delivery_days"`
	DeliveryDaysEstimated flexString `json:"delivery_days_estimated"`
	EstimatedDays         flexString `json:"estimated_days"`
}

type ratePayload struct {
	rateFields
	Attributes rateFields `json:"attributes"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// normalize flattens a raw rate into the shape the storefront consumes.
func (p ratePayload) normalize(index int) Rate {
	att := p.Attributes
	id := firstNonEmpty(p.ID, att.ID)
	if id == "" {
		id = "rate-" + strconv.Itoa(index)
	}
	price := decimal.Zero
	if raw := firstNonEmpty(string(att.TotalPrice), string(att.Price), string(p.TotalPrice), string(p.Price), string(att.Amount), string(p.Amount)); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			price = d
		}
	}
	return Rate{
		ID:      id,
		Carrier: firstNonEmpty(att.Carrier, att.CarrierName, p.Carrier, p.CarrierName),
		Service: firstNonEmpty(att.Service, att.ServiceName, p.Service, p.ServiceName, att.Name),
		Price:   price,
		DeliveryDays: firstNonEmpty(
			string(att.DeliveryDays), string(att.DeliveryDaysEstimated),
			string(p.DeliveryDays), string(p.DeliveryDaysEstimated),
			string(att.EstimatedDays)),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type quotationRequest struct {
	Quotation quotationBody `json:"quotation"`
}

type quotationBody struct {
	AddressFrom       Address  `json:"address_from"`
	AddressTo         Address  `json:"address_to"`
	Parcel            Parcel   `json:"parcel"`
	RequestedCarriers []string `json:"requested_carriers"`
}

type quotationResponse struct {
	ID    string        `json:"id"`
	Rates []ratePayload `json:"rates"`
	Data  []ratePayload `json:"data"`
}

func (r quotationResponse) ratePayloads() []ratePayload {
	if len(r.Rates) > 0 {
		return r.Rates
	}
	return r.Data
}
