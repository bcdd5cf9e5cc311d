package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	appchat "github.com/gomu/backend/internal/application/chat"
	"github.com/gomu/backend/internal/domain/chat"
)

// Hub tracks which connections are joined to which conversation rooms and
// fans persisted messages out to them. It implements the chat service's
// Broadcaster port.
type Hub struct {
	service *appchat.ConversationService
	logger  *zap.Logger

	mu    sync.RWMutex
	rooms map[int64]map[*Client]struct{}
}

// NewHub creates a hub bound to the conversation service
func NewHub(service *appchat.ConversationService, logger *zap.Logger) *Hub {
	return &Hub{
		service: service,
		logger:  logger,
		rooms:   make(map[int64]map[*Client]struct{}),
	}
}

// join adds a connection to a conversation's room. Authorization happened
// before this point.
func (h *Hub) join(conversationID int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[conversationID] = room
	}
	room[client] = struct{}{}
}

// drop removes a connection from every room it joined, called on disconnect
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conversationID, room := range h.rooms {
		if _, ok := room[client]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, conversationID)
			}
		}
	}
}

// roomSnapshot returns the room's members at this instant. Broadcast works
// off the snapshot, so a concurrent disconnect just misses that message.
func (h *Hub) roomSnapshot(conversationID int64) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room := h.rooms[conversationID]
	if len(room) == 0 {
		return nil
	}
	members := make([]*Client, 0, len(room))
	for client := range room {
		members = append(members, client)
	}
	return members
}

// Broadcast pushes a persisted message to every member of the
// conversation's room, including its author. Delivery is at most once: a
// member whose send queue is full gets disconnected rather than block the
// conversation's message ordering.
func (h *Hub) Broadcast(conversationID int64, message *chat.Message) {
	members := h.roomSnapshot(conversationID)
	if len(members) == 0 {
		return
	}

	frame, err := json.Marshal(outboundEvent{
		Type:    EventNewMessage,
		Success: true,
		Data:    newMessagePayload(message),
	})
	if err != nil {
		h.logger.Error("Failed to encode broadcast frame", zap.Error(err))
		return
	}

	for _, client := range members {
		if !client.enqueue(frame) {
			h.logger.Warn("Dropping slow chat connection",
				zap.Int64("conversation_id", conversationID))
			client.close()
		}
	}
}
