package persistence

import (
	"context"
	"errors"

	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormConversationRepository implements chat.ConversationRepository using
// GORM
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GormConversationRepository
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindByID finds a conversation by its ID without loading messages
func (r *GormConversationRepository) FindByID(ctx context.Context, id int64) (*chat.Conversation, error) {
	var conversation chat.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindByIDWithMessages finds a conversation and preloads its messages in
// chronological order
func (r *GormConversationRepository) FindByIDWithMessages(ctx context.Context, id int64) (*chat.Conversation, error) {
	var conversation chat.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC, messages.id ASC")
		}).
		First(&conversation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindByCustomer looks up the conversation for a customer email and
// optional order number. The order_key sentinel makes the no-order case
// queryable with plain equality.
func (r *GormConversationRepository) FindByCustomer(ctx context.Context, email string, orderNumber *string) (*chat.Conversation, error) {
	orderKey := ""
	if orderNumber != nil {
		orderKey = *orderNumber
	}

	var conversation chat.Conversation
	if err := r.db.WithContext(ctx).
		Where("customer_email = ? AND order_key = ?", chat.NormalizeEmail(email), orderKey).
		First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindAll returns every conversation newest-activity first, annotated with
// message counts and the linked sale's order number and status
func (r *GormConversationRepository) FindAll(ctx context.Context) ([]chat.ConversationSummary, error) {
	var summaries []chat.ConversationSummary
	if err := r.db.WithContext(ctx).
		Model(&chat.Conversation{}).
		Select("conversations.*, " +
			"(SELECT COUNT(*) FROM messages WHERE messages.conversation_id = conversations.id) AS message_count, " +
			"sales.order_number AS sale_order_number, sales.status AS sale_status").
		Joins("LEFT JOIN sales ON sales.id = conversations.sale_id").
		Order("conversations.updated_at DESC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Create inserts a conversation. A unique index violation on
// (customer_email, order_key) surfaces as shared.ErrAlreadyExists so the
// caller can refetch the row that won the race.
func (r *GormConversationRepository) Create(ctx context.Context, conversation *chat.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// AppendMessage inserts the message and bumps the conversation's updated
// timestamp to the message creation time in a single transaction, so the
// two writes are never observed apart.
func (r *GormConversationRepository) AppendMessage(ctx context.Context, conversation *chat.Conversation, message *chat.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&chat.Conversation{}).
			Where("id = ?", conversation.ID).
			Update("updated_at", message.CreatedAt).Error
	})
	if err != nil {
		return err
	}
	conversation.RecordMessageTime(message.CreatedAt)
	return nil
}

var _ chat.ConversationRepository = (*GormConversationRepository)(nil)
