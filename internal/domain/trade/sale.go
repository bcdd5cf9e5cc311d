package trade

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SaleStatus represents the fulfillment state of a sale
type SaleStatus string

const (
	SaleStatusPending    SaleStatus = "pending"
	SaleStatusProcessing SaleStatus = "processing"
	SaleStatusShipped    SaleStatus = "shipped"
	SaleStatusDelivered  SaleStatus = "delivered"
	SaleStatusCancelled  SaleStatus = "cancelled"
)

// IsValid returns true if the status is a known value
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusProcessing, SaleStatusShipped, SaleStatusDelivered, SaleStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status allows no further transitions
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusDelivered || s == SaleStatusCancelled
}

// Sale is a completed checkout: customer, shipping address, payment
// summary and the purchased items frozen as a JSON snapshot.
type Sale struct {
	shared.BaseEntity
	OrderNumber      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName     string `gorm:"type:varchar(100);not null"`
	CustomerLastName string `gorm:"type:varchar(100);not null"`
	Email            string `gorm:"type:varchar(255);not null;index"`
	Phone            string `gorm:"type:varchar(30)"`
	Address          string `gorm:"type:varchar(255);not null"`
	City             string `gorm:"type:varchar(100);not null"`
	State            string `gorm:"type:varchar(100)"`
	PostalCode       string `gorm:"type:varchar(20);not null"`
	Country          string `gorm:"type:varchar(100);not null;default:'México'"`
	PaymentMethod    string `gorm:"type:varchar(30);not null;default:'card'"`
	// CardLast4 keeps only the trailing digits of the card number. The
	// full number and CVV are never persisted.
	CardLast4      string          `gorm:"type:varchar(4)"`
	CardHolder     string          `gorm:"type:varchar(100)"`
	CardExpiration string          `gorm:"type:varchar(7)"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Shipping       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items          datatypes.JSON  `gorm:"type:jsonb;not null"`
	Notes          string          `gorm:"type:text"`
	Status         SaleStatus      `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// GenerateOrderNumber builds a human-readable unique order number in the
// form ORD-<unix millis>-<4 random digits>
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// NewSaleParams carries everything needed to record a sale
type NewSaleParams struct {
	CustomerName     string
	CustomerLastName string
	Email            string
	Phone            string
	Address          string
	City             string
	State            string
	PostalCode       string
	Country          string
	PaymentMethod    string
	CardNumber       string
	CardHolder       string
	CardExpiration   string
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Shipping         decimal.Decimal
	Total            decimal.Decimal
	Items            datatypes.JSON
	Notes            string
}

// NewSale records a sale in pending state. Card data is reduced to the
// last four digits before it ever reaches storage.
func NewSale(params NewSaleParams) (*Sale, error) {
	name := strings.TrimSpace(params.CustomerName)
	lastName := strings.TrimSpace(params.CustomerLastName)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	address := strings.TrimSpace(params.Address)
	city := strings.TrimSpace(params.City)
	postalCode := strings.TrimSpace(params.PostalCode)

	if name == "" || lastName == "" || email == "" || address == "" || city == "" || postalCode == "" {
		return nil, shared.NewDomainError("MISSING_FIELDS", "Customer name, email, address, city and postal code are required")
	}
	if len(params.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A sale must include at least one item")
	}
	if params.Total.IsNegative() || params.Subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}

	country := strings.TrimSpace(params.Country)
	if country == "" {
		country = "México"
	}
	paymentMethod := strings.TrimSpace(params.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	last4 := ""
	if digits := strings.TrimSpace(params.CardNumber); len(digits) >= 4 {
		last4 = digits[len(digits)-4:]
	}

	return &Sale{
		BaseEntity:       shared.NewBaseEntity(),
		OrderNumber:      GenerateOrderNumber(),
		CustomerName:     name,
		CustomerLastName: lastName,
		Email:            email,
		Phone:            strings.TrimSpace(params.Phone),
		Address:          address,
		City:             city,
		State:            strings.TrimSpace(params.State),
		PostalCode:       postalCode,
		Country:          country,
		PaymentMethod:    paymentMethod,
		CardLast4:        last4,
		CardHolder:       strings.TrimSpace(params.CardHolder),
		CardExpiration:   strings.TrimSpace(params.CardExpiration),
		Subtotal:         params.Subtotal,
		Discount:         params.Discount,
		Shipping:         params.Shipping,
		Total:            params.Total,
		Items:            params.Items,
		Notes:            strings.TrimSpace(params.Notes),
		Status:           SaleStatusPending,
	}, nil
}

// RegenerateOrderNumber replaces the order number after a uniqueness
// collision
func (s *Sale) RegenerateOrderNumber() {
	s.OrderNumber = GenerateOrderNumber()
}

// ChangeStatus transitions the sale to a new status. Delivered and
// cancelled sales cannot move again.
func (s *Sale) ChangeStatus(status SaleStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown sale status")
	}
	if s.Status.IsTerminal() && status != s.Status {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Sale in status '%s' cannot change to '%s'", s.Status, status))
	}
	s.Status = status
	s.Touch()
	return nil
}

// SetNotes replaces the free-form notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = strings.TrimSpace(notes)
	s.Touch()
}
