package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	appchat "github.com/gomu/backend/internal/application/chat"
	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/domain/shared"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 16 * 1024
	sendBufferSize = 64
)

// membership records a verified room binding for one connection. Customers
// carry the email that matched the conversation owner at join time.
type membership struct {
	email string
}

// Client is one websocket connection. Admin identity is fixed at connection
// establishment from a verified token, never from a client-sent flag. A
// connection may hold memberships in several conversation rooms, each
// authorized independently at join time.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	logger *zap.Logger

	isAdmin bool
	userID  int64

	// memberships is only touched by the read pump goroutine
	memberships map[int64]membership

	// sendMu guards send and sendClosed so a frame is never offered to a
	// closed channel. Broadcast closes slow members from the poster's
	// goroutine while the member's own read pump may still be replying.
	sendMu     sync.Mutex
	send       chan []byte
	sendClosed bool
}

// NewClient wraps an upgraded connection. isAdmin and userID come from the
// token validated during the HTTP upgrade, zero values for anonymous
// customers.
func NewClient(hub *Hub, conn *websocket.Conn, isAdmin bool, userID int64, logger *zap.Logger) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		logger:      logger,
		isAdmin:     isAdmin,
		userID:      userID,
		memberships: make(map[int64]membership),
		send:        make(chan []byte, sendBufferSize),
	}
}

// Run services the connection until it drops, then detaches it from every
// room it joined.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// enqueue offers a frame to the connection without blocking. Returns false
// when the send queue is full or the connection is already closed.
func (c *Client) enqueue(frame []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close tears the connection down once; safe to call from any goroutine
func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Chat connection closed unexpectedly", zap.Error(err))
			}
			return
		}

		var event inboundEvent
		if err := json.Unmarshal(frame, &event); err != nil {
			c.reply(outboundEvent{Type: EventError, Success: false, Message: "Malformed event"})
			continue
		}

		switch event.Type {
		case EventJoinConversation:
			c.handleJoin(event)
		case EventSendMessage:
			c.handleSend(event)
		default:
			c.reply(outboundEvent{Type: EventError, Success: false, Message: "Unknown event type"})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleJoin authorizes the connection for a conversation's room. Admins
// join any room; customers must present the owning email. Failures are
// acked inline and leave room state untouched.
func (c *Client) handleJoin(event inboundEvent) {
	if event.ConversationID <= 0 {
		c.reply(outboundEvent{Type: EventJoinAck, Success: false, Message: "conversationId must be a positive integer"})
		return
	}

	requester := appchat.Requester{
		Email:   chat.NormalizeEmail(event.Email),
		IsAdmin: c.isAdmin,
	}
	if _, err := c.hub.service.AuthorizeAccess(context.Background(), event.ConversationID, requester); err != nil {
		c.reply(outboundEvent{Type: EventJoinAck, Success: false, Message: ackMessage(err)})
		return
	}

	c.memberships[event.ConversationID] = membership{email: requester.Email}
	c.hub.join(event.ConversationID, c)
	c.reply(outboundEvent{Type: EventJoinAck, Success: true})
}

// handleSend posts a message using the connection's verified join state,
// not the claims in the frame. Customer sends require a membership in that
// conversation's room; the stored email is re-checked against the
// conversation at post time.
func (c *Client) handleSend(event inboundEvent) {
	requester := appchat.Requester{IsAdmin: c.isAdmin}
	if !c.isAdmin {
		member, ok := c.memberships[event.ConversationID]
		if !ok {
			c.reply(outboundEvent{Type: EventSendAck, Success: false, Message: "Join the conversation before sending"})
			return
		}
		requester.Email = member.email
	}

	message, err := c.hub.service.PostMessage(context.Background(), appchat.PostMessageInput{
		ConversationID: event.ConversationID,
		Sender:         event.Sender,
		Content:        event.Content,
		Requester:      requester,
	})
	if err != nil {
		c.reply(outboundEvent{Type: EventSendAck, Success: false, Message: ackMessage(err)})
		return
	}

	c.reply(outboundEvent{Type: EventSendAck, Success: true, Data: newMessagePayload(message)})
}

// reply queues an ack for this connection only
func (c *Client) reply(event outboundEvent) {
	frame, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("Failed to encode ack frame", zap.Error(err))
		return
	}
	if !c.enqueue(frame) {
		c.logger.Warn("Dropping slow chat connection on ack")
		c.close()
	}
}

// ackMessage converts an error into an ack-safe message. Domain errors are
// already written for clients; anything else becomes a generic failure.
func ackMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Operation failed"
}
