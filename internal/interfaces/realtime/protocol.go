package realtime

import (
	"time"

	"github.com/gomu/backend/internal/domain/chat"
)

// Client-to-server event types
const (
	EventJoinConversation = "join_conversation"
	EventSendMessage      = "send_message"
)

// Server-to-client event types
const (
	EventJoinAck    = "join_ack"
	EventSendAck    = "send_ack"
	EventNewMessage = "new_message"
	EventError      = "error"
)

// inboundEvent is the envelope for everything a client sends. Unused fields
// stay zero for the event types that do not carry them.
type inboundEvent struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversationId"`
	Email          string `json:"email,omitempty"`
	Content        string `json:"content,omitempty"`
	Sender         string `json:"sender,omitempty"`
}

// outboundEvent is the envelope for acks and pushes. Failures carry Message,
// successes carry Data.
type outboundEvent struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// messagePayload is the wire shape of a chat message
type messagePayload struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newMessagePayload(message *chat.Message) messagePayload {
	return messagePayload{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Sender:         string(message.Sender),
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
}
