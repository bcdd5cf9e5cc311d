package chat

import (
	"strings"
	"time"

	"github.com/gomu/backend/internal/domain/shared"
)

// Conversation is a thread of messages between a customer and the store
// admins, optionally tied to an order. A customer has at most one
// conversation per order, plus at most one general conversation with no
// order attached.
type Conversation struct {
	shared.BaseEntity
	CustomerName  string  `gorm:"type:varchar(100);not null"`
	CustomerEmail string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_conversations_customer_order,priority:1"`
	SaleID        *int64  `gorm:"index"`
	OrderNumber   *string `gorm:"type:varchar(50)"`
	// OrderKey mirrors OrderNumber with "" standing in for the no-order
	// case, so the unique index covers conversations without an order.
	OrderKey string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_conversations_customer_order,priority:2"`
	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// TableName returns the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// NormalizeEmail trims surrounding whitespace and lower-cases an email
// address. All email comparisons in the chat context go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeOrderNumber trims an optional order number. A nil pointer or a
// blank string both mean "no order".
func NormalizeOrderNumber(orderNumber *string) *string {
	if orderNumber == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*orderNumber)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NewConversation creates a conversation for a customer, optionally linked
// to an order number
func NewConversation(customerName, customerEmail string, orderNumber *string) (*Conversation, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(customerName) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 100 characters")
	}

	customerEmail = NormalizeEmail(customerEmail)
	if err := validateEmail(customerEmail); err != nil {
		return nil, err
	}

	orderNumber = NormalizeOrderNumber(orderNumber)

	conversation := &Conversation{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		OrderNumber:   orderNumber,
	}
	if orderNumber != nil {
		conversation.OrderKey = *orderNumber
	}

	return conversation, nil
}

// LinkSale attaches the internal sale record resolved from the order number
func (c *Conversation) LinkSale(saleID int64) {
	c.SaleID = &saleID
}

// BelongsTo reports whether the given email owns this conversation.
// Comparison is on the normalized form.
func (c *Conversation) BelongsTo(email string) bool {
	return c.CustomerEmail == NormalizeEmail(email)
}

// RecordMessageTime moves the conversation's updated timestamp to the
// creation time of its latest message, keeping list ordering in step with
// activity.
func (c *Conversation) RecordMessageTime(at time.Time) {
	c.UpdatedAt = at
}

// validateEmail checks the normalized email for basic well-formedness
func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email cannot exceed 255 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email is not a valid address")
	}
	return nil
}
