package chat

import (
	"github.com/gomu/backend/internal/domain/chat"
)

// Requester identifies who is asking for chat data. Admin identity comes
// from a verified token, customer identity from a claimed email that must
// match the conversation owner.
type Requester struct {
	Email   string
	IsAdmin bool
}

// ResolveInput contains the input for resolve-or-create
type ResolveInput struct {
	CustomerName  string
	CustomerEmail string
	SaleID        *int64
	OrderNumber   *string
}

// ResolveResult is a conversation with its messages, flagged with whether
// this call created it
type ResolveResult struct {
	Conversation *chat.Conversation
	Created      bool
}

// PostMessageInput contains the input for posting a message
type PostMessageInput struct {
	ConversationID int64
	Sender         string
	Content        string
	Requester      Requester
}
