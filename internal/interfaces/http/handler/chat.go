package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	chatapp "github.com/gomu/backend/internal/application/chat"
	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/interfaces/http/middleware"
)

// ChatHandler serves the REST side of the chat subsystem. The websocket
// side lives in the realtime package; both go through the same service so
// authorization rules cannot drift between transports.
type ChatHandler struct {
	BaseHandler
	conversationService *chatapp.ConversationService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(conversationService *chatapp.ConversationService) *ChatHandler {
	return &ChatHandler{conversationService: conversationService}
}

// ResolveConversationRequest identifies a customer's conversation. Omitting
// the order binds the request to the customer's general conversation.
type ResolveConversationRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	SaleID        *int64  `json:"sale_id"`
	OrderNumber   *string `json:"order_number"`
}

// PostChatMessageRequest is the admin reply body. Sender is validated by the
// service, which rejects values other than customer or admin.
type PostChatMessageRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ChatMessageResponse represents a message in responses
type ChatMessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func newChatMessageResponse(message *chat.Message) ChatMessageResponse {
	return ChatMessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Sender:         string(message.Sender),
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
}

// ConversationResponse represents a conversation in responses
type ConversationResponse struct {
	ID            int64                 `json:"id"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	SaleID        *int64                `json:"sale_id,omitempty"`
	OrderNumber   *string               `json:"order_number,omitempty"`
	Messages      []ChatMessageResponse `json:"messages,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func newConversationResponse(conversation *chat.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:            conversation.ID,
		CustomerName:  conversation.CustomerName,
		CustomerEmail: conversation.CustomerEmail,
		SaleID:        conversation.SaleID,
		OrderNumber:   conversation.OrderNumber,
		CreatedAt:     conversation.CreatedAt,
		UpdatedAt:     conversation.UpdatedAt,
	}
	for i := range conversation.Messages {
		resp.Messages = append(resp.Messages, newChatMessageResponse(&conversation.Messages[i]))
	}
	return resp
}

// ConversationSummaryResponse is the admin inbox row
type ConversationSummaryResponse struct {
	ConversationResponse
	MessageCount    int64   `json:"message_count"`
	SaleOrderNumber *string `json:"sale_order_number,omitempty"`
	SaleStatus      *string `json:"sale_status,omitempty"`
}

// Resolve handles POST /conversations. It returns the caller's existing
// conversation for the (email, order) pair or creates one, reporting which
// through the status code.
func (h *ChatHandler) Resolve(c *gin.Context) {
	var req ResolveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.conversationService.ResolveOrCreate(c.Request.Context(), chatapp.ResolveInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		SaleID:        req.SaleID,
		OrderNumber:   req.OrderNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := newConversationResponse(result.Conversation)
	if result.Created {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}

// List handles GET /conversations, the admin inbox
func (h *ChatHandler) List(c *gin.Context) {
	summaries, err := h.conversationService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ConversationSummaryResponse, 0, len(summaries))
	for i := range summaries {
		out = append(out, ConversationSummaryResponse{
			ConversationResponse: newConversationResponse(&summaries[i].Conversation),
			MessageCount:         summaries[i].MessageCount,
			SaleOrderNumber:      summaries[i].SaleOrderNumber,
			SaleStatus:           summaries[i].SaleStatus,
		})
	}
	h.Success(c, out)
}

// GetMessages handles GET /conversations/:id/messages. Admins read any
// conversation; customers prove ownership with their email.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	conversation, err := h.conversationService.GetMessages(c.Request.Context(), id, h.requester(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newConversationResponse(conversation))
}

// PostMessage handles POST /conversations/:id/messages, the admin reply
// endpoint. Customers send messages over the websocket instead.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	message, err := h.conversationService.PostMessage(c.Request.Context(), chatapp.PostMessageInput{
		ConversationID: id,
		Sender:         req.Sender,
		Content:        req.Content,
		Requester:      h.requester(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newChatMessageResponse(message))
}

// requester derives the caller identity. A validated admin token wins;
// anonymous customers identify by email query parameter.
func (h *ChatHandler) requester(c *gin.Context) chatapp.Requester {
	if claims := middleware.GetClaims(c); claims != nil && claims.IsAdmin() {
		return chatapp.Requester{Email: claims.Email, IsAdmin: true}
	}
	return chatapp.Requester{Email: chat.NormalizeEmail(c.Query("email"))}
}
