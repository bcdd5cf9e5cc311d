package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
)

// Broadcaster pushes a persisted message to every connection joined to the
// conversation's room. Fan-out is fire-and-forget: a connection that is gone
// at broadcast time simply misses the message.
type Broadcaster interface {
	Broadcast(conversationID int64, message *chat.Message)
}

// ConversationService is the chat core: resolve-or-create, listings, and
// authorized message reads and writes shared by the REST and realtime
// transports.
type ConversationService struct {
	conversations chat.ConversationRepository
	sales         trade.SaleRepository
	broadcaster   Broadcaster
	logger        *zap.Logger

	// locks serializes persist+broadcast per conversation so concurrent
	// sends cannot interleave and break message/updatedAt ordering. Entries
	// are never pruned; the map grows with the number of conversations
	// posted to since startup, one mutex each.
	locks sync.Map // conversationID -> *sync.Mutex
}

// NewConversationService creates a new conversation service
func NewConversationService(
	conversations chat.ConversationRepository,
	sales trade.SaleRepository,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		sales:         sales,
		logger:        logger,
	}
}

// SetBroadcaster attaches the realtime fan-out. The realtime hub depends on
// this service for message handling, so the wiring happens after both exist.
func (s *ConversationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ResolveOrCreate returns the customer's conversation for the given order
// scope, creating it on first contact. Repeated calls with the same
// normalized email and order number return the same conversation.
func (s *ConversationService) ResolveOrCreate(ctx context.Context, input ResolveInput) (*ResolveResult, error) {
	candidate, err := chat.NewConversation(input.CustomerName, input.CustomerEmail, input.OrderNumber)
	if err != nil {
		return nil, err
	}

	saleID := input.SaleID
	orderNumber := candidate.OrderNumber
	if orderNumber != nil && saleID == nil {
		// Let a customer reference an order by number alone. Adopt the
		// sale's canonical order number when it resolves.
		sale, err := s.sales.FindByOrderNumber(ctx, *orderNumber)
		switch {
		case err == nil:
			saleID = &sale.ID
			orderNumber = &sale.OrderNumber
		case errors.Is(err, shared.ErrNotFound):
			// Unknown order numbers still get a conversation scoped to them
		default:
			return nil, err
		}
	}

	existing, err := s.conversations.FindByCustomer(ctx, candidate.CustomerEmail, orderNumber)
	switch {
	case err == nil:
		return s.resolveExisting(ctx, existing.ID)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	candidate.OrderNumber = orderNumber
	if orderNumber != nil {
		candidate.OrderKey = *orderNumber
	}
	if saleID != nil {
		candidate.LinkSale(*saleID)
	}

	if err := s.conversations.Create(ctx, candidate); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost a create race. The winning row is the conversation.
			winner, ferr := s.conversations.FindByCustomer(ctx, candidate.CustomerEmail, orderNumber)
			if ferr != nil {
				return nil, ferr
			}
			return s.resolveExisting(ctx, winner.ID)
		}
		return nil, err
	}

	s.logger.Info("Created conversation",
		zap.Int64("conversation_id", candidate.ID),
		zap.String("customer_email", candidate.CustomerEmail),
		zap.Bool("has_order", orderNumber != nil))

	return &ResolveResult{Conversation: candidate, Created: true}, nil
}

func (s *ConversationService) resolveExisting(ctx context.Context, id int64) (*ResolveResult, error) {
	conversation, err := s.conversations.FindByIDWithMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ResolveResult{Conversation: conversation, Created: false}, nil
}

// List returns every conversation, most recently active first, annotated
// with message counts and linked sale state. Admin only; the transports
// enforce that before calling.
func (s *ConversationService) List(ctx context.Context) ([]chat.ConversationSummary, error) {
	return s.conversations.FindAll(ctx)
}

// GetMessages returns a conversation with its messages in ascending
// creation order. Non-admin requesters must present the owning email.
func (s *ConversationService) GetMessages(ctx context.Context, conversationID int64, requester Requester) (*chat.Conversation, error) {
	conversation, err := s.conversations.FindByIDWithMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(conversation, requester); err != nil {
		return nil, err
	}
	return conversation, nil
}

// AuthorizeAccess checks whether the requester may read a conversation
// without returning its messages. The realtime join path uses this.
func (s *ConversationService) AuthorizeAccess(ctx context.Context, conversationID int64, requester Requester) (*chat.Conversation, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(conversation, requester); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *ConversationService) authorize(conversation *chat.Conversation, requester Requester) error {
	if requester.IsAdmin {
		return nil
	}
	if !conversation.BelongsTo(requester.Email) {
		return fmt.Errorf("conversation %d does not belong to requester: %w", conversation.ID, shared.ErrForbidden)
	}
	return nil
}

// PostMessage persists a message on a conversation and pushes it to the
// conversation's room. Persist and broadcast are serialized per
// conversation, so all room members observe messages in persistence order
// and updatedAt always equals the newest message's creation time.
func (s *ConversationService) PostMessage(ctx context.Context, input PostMessageInput) (*chat.Message, error) {
	if input.ConversationID <= 0 {
		return nil, shared.NewDomainError("INVALID_CONVERSATION", "Conversation ID is required")
	}
	sender, err := chat.ParseSender(input.Sender)
	if err != nil {
		return nil, err
	}

	mu := s.lockFor(input.ConversationID)
	mu.Lock()
	defer mu.Unlock()

	conversation, err := s.conversations.FindByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeSender(conversation, sender, input.Requester); err != nil {
		return nil, err
	}

	message, err := chat.NewMessage(conversation.ID, sender, input.Content)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.AppendMessage(ctx, conversation, message); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(conversation.ID, message)
	}

	return message, nil
}

// authorizeSender checks the write-side rule: customer sends must come from
// the conversation owner, admin sends from a verified admin identity.
func (s *ConversationService) authorizeSender(conversation *chat.Conversation, sender chat.Sender, requester Requester) error {
	switch sender {
	case chat.SenderAdmin:
		if !requester.IsAdmin {
			return fmt.Errorf("admin sender requires admin identity: %w", shared.ErrForbidden)
		}
	case chat.SenderCustomer:
		if !conversation.BelongsTo(requester.Email) {
			return fmt.Errorf("customer sender does not own conversation %d: %w", conversation.ID, shared.ErrForbidden)
		}
	}
	return nil
}

func (s *ConversationService) lockFor(conversationID int64) *sync.Mutex {
	if mu, ok := s.locks.Load(conversationID); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
