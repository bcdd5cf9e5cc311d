package chat

import (
	"strings"

	"github.com/gomu/backend/internal/domain/shared"
)

// MaxMessageLength is the maximum length of a message body
const MaxMessageLength = 5000

// Sender identifies which side of a conversation authored a message
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderAdmin    Sender = "admin"
)

// ParseSender converts a string into a Sender, rejecting unknown values
func ParseSender(s string) (Sender, error) {
	switch Sender(strings.TrimSpace(s)) {
	case SenderCustomer:
		return SenderCustomer, nil
	case SenderAdmin:
		return SenderAdmin, nil
	default:
		return "", shared.NewDomainError("INVALID_SENDER", "Sender must be 'customer' or 'admin'")
	}
}

// IsValid returns true if the sender is a known value
func (s Sender) IsValid() bool {
	return s == SenderCustomer || s == SenderAdmin
}

// Message is a single entry in a conversation. Messages are append-only:
// once created they are never edited or deleted.
type Message struct {
	shared.BaseEntity
	ConversationID int64  `gorm:"not null;index"`
	Sender         Sender `gorm:"type:varchar(20);not null"`
	Content        string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewMessage creates a message for the given conversation
func NewMessage(conversationID int64, sender Sender, content string) (*Message, error) {
	if conversationID <= 0 {
		return nil, shared.NewDomainError("INVALID_CONVERSATION", "Conversation ID is required")
	}
	if !sender.IsValid() {
		return nil, shared.NewDomainError("INVALID_SENDER", "Sender must be 'customer' or 'admin'")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Message content cannot be empty")
	}
	if len(content) > MaxMessageLength {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Message content is too long")
	}

	return &Message{
		BaseEntity:     shared.NewBaseEntity(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
	}, nil
}
