package chat

import (
	"context"
)

// ConversationSummary is a conversation row annotated for admin listings
type ConversationSummary struct {
	Conversation
	MessageCount    int64   `gorm:"column:message_count"`
	SaleOrderNumber *string `gorm:"column:sale_order_number"`
	SaleStatus      *string `gorm:"column:sale_status"`
}

// ConversationRepository is the persistence port for conversations and
// their messages. Messages have no independent lifecycle, so appending and
// reading them happens through the owning conversation.
type ConversationRepository interface {
	// FindByID loads a conversation without its messages
	FindByID(ctx context.Context, id int64) (*Conversation, error)

	// FindByIDWithMessages loads a conversation with its messages ordered
	// by creation time ascending
	FindByIDWithMessages(ctx context.Context, id int64) (*Conversation, error)

	// FindByCustomer looks up the conversation for a normalized email and
	// optional order number. A nil orderNumber matches only the
	// conversation with no order attached.
	FindByCustomer(ctx context.Context, email string, orderNumber *string) (*Conversation, error)

	// FindAll returns every conversation ordered by updated time
	// descending, annotated with message counts and linked sale state
	FindAll(ctx context.Context) ([]ConversationSummary, error)

	// Create inserts a conversation. A uniqueness violation on
	// (customer_email, order_key) is reported as shared.ErrAlreadyExists
	// so callers can refetch the winning row.
	Create(ctx context.Context, conversation *Conversation) error

	// AppendMessage inserts the message and moves the conversation's
	// updated timestamp to the message's creation time in one transaction
	AppendMessage(ctx context.Context, conversation *Conversation, message *Message) error
}
