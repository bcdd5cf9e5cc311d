package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
)

// MockConversationRepository is a mock implementation of chat.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id int64) (*chat.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByIDWithMessages(ctx context.Context, id int64) (*chat.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByCustomer(ctx context.Context, email string, orderNumber *string) (*chat.Conversation, error) {
	args := m.Called(ctx, email, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindAll(ctx context.Context) ([]chat.ConversationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]chat.ConversationSummary), args.Error(1)
}

func (m *MockConversationRepository) Create(ctx context.Context, conversation *chat.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) AppendMessage(ctx context.Context, conversation *chat.Conversation, message *chat.Message) error {
	args := m.Called(ctx, conversation, message)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Sale, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*trade.SaleStats, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SaleStats), args.Error(1)
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []*chat.Message
}

func (b *recordingBroadcaster) Broadcast(conversationID int64, message *chat.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
}

func newTestService(t *testing.T) (*ConversationService, *MockConversationRepository, *MockSaleRepository) {
	t.Helper()
	conversations := new(MockConversationRepository)
	sales := new(MockSaleRepository)
	return NewConversationService(conversations, sales, zap.NewNop()), conversations, sales
}

func storedConversation(id int64, email string, orderNumber *string) *chat.Conversation {
	conversation, err := chat.NewConversation("Ana", email, orderNumber)
	if err != nil {
		panic(err)
	}
	conversation.ID = id
	return conversation
}

func TestResolveOrCreateCreatesOnFirstContact(t *testing.T) {
	service, conversations, _ := newTestService(t)

	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", (*string)(nil)).
		Return(nil, shared.ErrNotFound)
	conversations.On("Create", mock.Anything, mock.MatchedBy(func(c *chat.Conversation) bool {
		return c.CustomerEmail == "ana@x.com" && c.OrderNumber == nil && c.OrderKey == ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*chat.Conversation).ID = 7
	}).Return(nil)

	result, err := service.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerName:  "Ana",
		CustomerEmail: " Ana@X.com ",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, int64(7), result.Conversation.ID)
	assert.Equal(t, "ana@x.com", result.Conversation.CustomerEmail)
	conversations.AssertExpectations(t)
}

func TestResolveOrCreateReturnsExisting(t *testing.T) {
	service, conversations, _ := newTestService(t)

	existing := storedConversation(3, "ana@x.com", nil)
	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", (*string)(nil)).
		Return(existing, nil)
	conversations.On("FindByIDWithMessages", mock.Anything, int64(3)).
		Return(existing, nil)

	result, err := service.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@x.com ",
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, int64(3), result.Conversation.ID)
	conversations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolveOrCreateAdoptsSaleFromOrderNumber(t *testing.T) {
	service, conversations, sales := newTestService(t)

	sale := &trade.Sale{OrderNumber: "ORD-1700000000000-0042"}
	sale.ID = 21
	sales.On("FindByOrderNumber", mock.Anything, "ORD-1700000000000-0042").
		Return(sale, nil)

	canonical := "ORD-1700000000000-0042"
	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", &canonical).
		Return(nil, shared.ErrNotFound)
	conversations.On("Create", mock.Anything, mock.MatchedBy(func(c *chat.Conversation) bool {
		return c.SaleID != nil && *c.SaleID == 21 &&
			c.OrderNumber != nil && *c.OrderNumber == canonical &&
			c.OrderKey == canonical
	})).Return(nil)

	orderNumber := " ORD-1700000000000-0042 "
	result, err := service.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@x.com",
		OrderNumber:   &orderNumber,
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	conversations.AssertExpectations(t)
}

func TestResolveOrCreateUnknownOrderNumberStillScopes(t *testing.T) {
	service, conversations, sales := newTestService(t)

	sales.On("FindByOrderNumber", mock.Anything, "ORD-X").
		Return(nil, shared.ErrNotFound)

	orderNumber := "ORD-X"
	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", &orderNumber).
		Return(nil, shared.ErrNotFound)
	conversations.On("Create", mock.Anything, mock.MatchedBy(func(c *chat.Conversation) bool {
		return c.SaleID == nil && c.OrderNumber != nil && *c.OrderNumber == "ORD-X"
	})).Return(nil)

	result, err := service.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@x.com",
		OrderNumber:   &orderNumber,
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
}

func TestResolveOrCreateLosesCreateRace(t *testing.T) {
	service, conversations, _ := newTestService(t)

	winner := storedConversation(12, "ana@x.com", nil)
	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", (*string)(nil)).
		Return(nil, shared.ErrNotFound).Once()
	conversations.On("Create", mock.Anything, mock.Anything).
		Return(shared.ErrAlreadyExists)
	conversations.On("FindByCustomer", mock.Anything, "ana@x.com", (*string)(nil)).
		Return(winner, nil).Once()
	conversations.On("FindByIDWithMessages", mock.Anything, int64(12)).
		Return(winner, nil)

	result, err := service.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@x.com",
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, int64(12), result.Conversation.ID)
}

func TestResolveOrCreateRejectsMissingFields(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.ResolveOrCreate(context.Background(), ResolveInput{CustomerEmail: "ana@x.com"})
	assert.Error(t, err)

	_, err = service.ResolveOrCreate(context.Background(), ResolveInput{CustomerName: "Ana"})
	assert.Error(t, err)
}

func TestGetMessagesAuthorization(t *testing.T) {
	service, conversations, _ := newTestService(t)

	conversation := storedConversation(7, "right@x.com", nil)
	conversations.On("FindByIDWithMessages", mock.Anything, int64(7)).
		Return(conversation, nil)

	_, err := service.GetMessages(context.Background(), 7, Requester{Email: "wrong@x.com"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	got, err := service.GetMessages(context.Background(), 7, Requester{Email: " Right@X.com "})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	got, err = service.GetMessages(context.Background(), 7, Requester{IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestGetMessagesNotFound(t *testing.T) {
	service, conversations, _ := newTestService(t)

	conversations.On("FindByIDWithMessages", mock.Anything, int64(99)).
		Return(nil, shared.ErrNotFound)

	_, err := service.GetMessages(context.Background(), 99, Requester{IsAdmin: true})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestPostMessagePersistsAndBroadcasts(t *testing.T) {
	service, conversations, _ := newTestService(t)
	broadcaster := &recordingBroadcaster{}
	service.SetBroadcaster(broadcaster)

	conversation := storedConversation(5, "ana@x.com", nil)
	conversations.On("FindByID", mock.Anything, int64(5)).
		Return(conversation, nil)
	conversations.On("AppendMessage", mock.Anything, conversation, mock.MatchedBy(func(m *chat.Message) bool {
		return m.ConversationID == 5 && m.Sender == chat.SenderCustomer && m.Content == "hola"
	})).Run(func(args mock.Arguments) {
		c := args.Get(1).(*chat.Conversation)
		m := args.Get(2).(*chat.Message)
		c.RecordMessageTime(m.CreatedAt)
	}).Return(nil)

	message, err := service.PostMessage(context.Background(), PostMessageInput{
		ConversationID: 5,
		Sender:         "customer",
		Content:        "  hola  ",
		Requester:      Requester{Email: "ana@x.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hola", message.Content)
	assert.Equal(t, conversation.UpdatedAt, message.CreatedAt)
	require.Len(t, broadcaster.messages, 1)
	assert.Equal(t, message, broadcaster.messages[0])
}

func TestPostMessageSenderAuthorization(t *testing.T) {
	service, conversations, _ := newTestService(t)

	conversation := storedConversation(5, "ana@x.com", nil)
	conversations.On("FindByID", mock.Anything, int64(5)).
		Return(conversation, nil)

	// Customer claim from a non-owner
	_, err := service.PostMessage(context.Background(), PostMessageInput{
		ConversationID: 5,
		Sender:         "customer",
		Content:        "hi",
		Requester:      Requester{Email: "other@x.com"},
	})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	// Admin claim without admin identity, even from the conversation owner
	_, err = service.PostMessage(context.Background(), PostMessageInput{
		ConversationID: 5,
		Sender:         "admin",
		Content:        "hi",
		Requester:      Requester{Email: "ana@x.com"},
	})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	conversations.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessageValidation(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.PostMessage(context.Background(), PostMessageInput{
		ConversationID: 0,
		Sender:         "customer",
		Content:        "hi",
	})
	assert.Error(t, err)

	_, err = service.PostMessage(context.Background(), PostMessageInput{
		ConversationID: 5,
		Sender:         "robot",
		Content:        "hi",
	})
	assert.Error(t, err)
}

func TestPostMessageSerializesPerConversation(t *testing.T) {
	service, conversations, _ := newTestService(t)

	conversation := storedConversation(5, "ana@x.com", nil)
	conversations.On("FindByID", mock.Anything, int64(5)).
		Return(conversation, nil)

	var inCritical int32
	conversations.On("AppendMessage", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.True(t, atomic.CompareAndSwapInt32(&inCritical, 0, 1),
				"concurrent append on the same conversation")
			time.Sleep(time.Millisecond)
			atomic.StoreInt32(&inCritical, 0)
		}).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.PostMessage(context.Background(), PostMessageInput{
				ConversationID: 5,
				Sender:         "customer",
				Content:        "hola",
				Requester:      Requester{Email: "ana@x.com"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
