package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	chatapp "github.com/gomu/backend/internal/application/chat"
	"github.com/gomu/backend/internal/domain/chat"
	"github.com/gomu/backend/internal/domain/identity"
	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
	"github.com/gomu/backend/internal/infrastructure/auth"
	"github.com/gomu/backend/internal/infrastructure/config"
	"github.com/gomu/backend/internal/interfaces/http/dto"
	"github.com/gomu/backend/internal/interfaces/http/middleware"
)

// chatMemoryRepo is an in-memory ConversationRepository giving the REST
// tests real resolve-or-create and ownership semantics.
type chatMemoryRepo struct {
	mu            sync.Mutex
	nextID        int64
	conversations map[int64]*chat.Conversation
}

func newChatMemoryRepo() *chatMemoryRepo {
	return &chatMemoryRepo{conversations: make(map[int64]*chat.Conversation)}
}

func (r *chatMemoryRepo) seed(t *testing.T, name, email string, orderNumber *string) *chat.Conversation {
	t.Helper()
	conversation, err := chat.NewConversation(name, email, orderNumber)
	require.NoError(t, err)
	require.NoError(t, r.Create(context.Background(), conversation))
	return conversation
}

func (r *chatMemoryRepo) FindByID(_ context.Context, id int64) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation %d: %w", id, shared.ErrNotFound)
	}
	return conversation, nil
}

func (r *chatMemoryRepo) FindByIDWithMessages(ctx context.Context, id int64) (*chat.Conversation, error) {
	return r.FindByID(ctx, id)
}

func (r *chatMemoryRepo) FindByCustomer(_ context.Context, email string, orderNumber *string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orderKey := ""
	if orderNumber != nil {
		orderKey = *orderNumber
	}
	for _, conversation := range r.conversations {
		if conversation.CustomerEmail == email && conversation.OrderKey == orderKey {
			return conversation, nil
		}
	}
	return nil, fmt.Errorf("conversation for %s: %w", email, shared.ErrNotFound)
}

func (r *chatMemoryRepo) FindAll(context.Context) ([]chat.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summaries := make([]chat.ConversationSummary, 0, len(r.conversations))
	for _, conversation := range r.conversations {
		summaries = append(summaries, chat.ConversationSummary{
			Conversation: *conversation,
			MessageCount: int64(len(conversation.Messages)),
		})
	}
	return summaries, nil
}

func (r *chatMemoryRepo) Create(_ context.Context, conversation *chat.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.conversations {
		if existing.CustomerEmail == conversation.CustomerEmail && existing.OrderKey == conversation.OrderKey {
			return fmt.Errorf("conversation: %w", shared.ErrAlreadyExists)
		}
	}
	r.nextID++
	conversation.ID = r.nextID
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *chatMemoryRepo) AppendMessage(_ context.Context, conversation *chat.Conversation, message *chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	conversation.Messages = append(conversation.Messages, *message)
	conversation.RecordMessageTime(message.CreatedAt)
	return nil
}

// chatStubSaleRepo satisfies the sale port; these tests never resolve an
// order number against a real sale.
type chatStubSaleRepo struct{}

func (chatStubSaleRepo) FindByID(_ context.Context, id int64) (*trade.Sale, error) {
	return nil, fmt.Errorf("sale %d: %w", id, shared.ErrNotFound)
}

func (chatStubSaleRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.Sale, error) {
	return nil, fmt.Errorf("sale %s: %w", orderNumber, shared.ErrNotFound)
}

func (chatStubSaleRepo) FindAll(context.Context, trade.SaleFilter) ([]trade.Sale, int64, error) {
	return nil, 0, nil
}

func (chatStubSaleRepo) Create(context.Context, *trade.Sale) error { return nil }
func (chatStubSaleRepo) Update(context.Context, *trade.Sale) error { return nil }
func (chatStubSaleRepo) Delete(context.Context, int64) error       { return nil }

func (chatStubSaleRepo) Stats(context.Context, *time.Time, *time.Time) (*trade.SaleStats, error) {
	return &trade.SaleStats{}, nil
}

type chatRestFixture struct {
	router     *gin.Engine
	repo       *chatMemoryRepo
	jwtService *auth.JWTService
}

// newChatRestFixture mounts the chat routes the way the router does: the
// resolve endpoint public, the message read behind OptionalAuth, and the
// admin endpoints behind RequireAuth plus RequireAdmin.
func newChatRestFixture(t *testing.T) *chatRestFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newChatMemoryRepo()
	service := chatapp.NewConversationService(repo, chatStubSaleRepo{}, zap.NewNop())
	h := NewChatHandler(service)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())

	router := gin.New()
	router.POST("/conversations", h.Resolve)
	router.GET("/conversations/:id/messages", authMiddleware.OptionalAuth(), h.GetMessages)

	admin := router.Group("")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	admin.GET("/conversations", h.List)
	admin.POST("/conversations/:id/messages", h.PostMessage)

	return &chatRestFixture{router: router, repo: repo, jwtService: jwtService}
}

func (f *chatRestFixture) token(t *testing.T, role identity.Role) string {
	t.Helper()
	user, err := identity.NewUser("someone@example.com", "Someone", "supersecret", role)
	require.NoError(t, err)
	user.ID = 1
	pair, err := f.jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *chatRestFixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestResolveCreatesThenReturnsExisting(t *testing.T) {
	f := newChatRestFixture(t)

	first := f.request(t, http.MethodPost, "/conversations", "", gin.H{
		"customer_name":  "Ana",
		"customer_email": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	resp := decodeResponse(t, first)
	require.True(t, resp.Success)
	var created ConversationResponse
	require.NoError(t, json.Unmarshal(mustMarshal(t, resp.Data), &created))

	// Same customer again, with email noise the normalizer strips
	second := f.request(t, http.MethodPost, "/conversations", "", gin.H{
		"customer_name":  "Ana",
		"customer_email": "  Ana@Example.com  ",
	})
	require.Equal(t, http.StatusOK, second.Code)

	resp = decodeResponse(t, second)
	var resolved ConversationResponse
	require.NoError(t, json.Unmarshal(mustMarshal(t, resp.Data), &resolved))
	assert.Equal(t, created.ID, resolved.ID)
	assert.Equal(t, "ana@example.com", resolved.CustomerEmail)
}

func TestResolveSeparatesOrderConversations(t *testing.T) {
	f := newChatRestFixture(t)

	general := f.request(t, http.MethodPost, "/conversations", "", gin.H{
		"customer_name":  "Ana",
		"customer_email": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, general.Code)

	order := f.request(t, http.MethodPost, "/conversations", "", gin.H{
		"customer_name":  "Ana",
		"customer_email": "ana@example.com",
		"order_number":   "ORD-123",
	})
	require.Equal(t, http.StatusCreated, order.Code, "an order scope gets its own conversation")
}

func TestGetMessagesRequiresOwnership(t *testing.T) {
	f := newChatRestFixture(t)
	conversation := f.repo.seed(t, "Ana", "ana@example.com", nil)

	denied := f.request(t, http.MethodGet,
		fmt.Sprintf("/conversations/%d/messages?email=eve@example.com", conversation.ID), "", nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)

	allowed := f.request(t, http.MethodGet,
		fmt.Sprintf("/conversations/%d/messages?email=ana@example.com", conversation.ID), "", nil)
	assert.Equal(t, http.StatusOK, allowed.Code)
}

func TestAdminReadsAndReplies(t *testing.T) {
	f := newChatRestFixture(t)
	conversation := f.repo.seed(t, "Ana", "ana@example.com", nil)
	adminToken := f.token(t, identity.RoleAdmin)

	read := f.request(t, http.MethodGet,
		fmt.Sprintf("/conversations/%d/messages", conversation.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, read.Code, "admins read without an email parameter")

	reply := f.request(t, http.MethodPost,
		fmt.Sprintf("/conversations/%d/messages", conversation.ID), adminToken,
		gin.H{"sender": "admin", "content": "How can I help?"})
	require.Equal(t, http.StatusCreated, reply.Code)

	resp := decodeResponse(t, reply)
	var message ChatMessageResponse
	require.NoError(t, json.Unmarshal(mustMarshal(t, resp.Data), &message))
	assert.Equal(t, string(chat.SenderAdmin), message.Sender)
	assert.Equal(t, conversation.ID, message.ConversationID)

	stored, err := f.repo.FindByIDWithMessages(context.Background(), conversation.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, stored.Messages[0].CreatedAt, stored.UpdatedAt,
		"conversation activity tracks the last message")
}

func TestPostMessageRejectsInvalidSender(t *testing.T) {
	f := newChatRestFixture(t)
	conversation := f.repo.seed(t, "Ana", "ana@example.com", nil)
	adminToken := f.token(t, identity.RoleAdmin)
	path := fmt.Sprintf("/conversations/%d/messages", conversation.ID)

	missing := f.request(t, http.MethodPost, path, adminToken, gin.H{"content": "hello"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	unknown := f.request(t, http.MethodPost, path, adminToken,
		gin.H{"sender": "bot", "content": "hello"})
	assert.Equal(t, http.StatusBadRequest, unknown.Code)

	stored, err := f.repo.FindByIDWithMessages(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Messages, "rejected bodies must not persist a message")
}

func TestPostMessageRequiresAdmin(t *testing.T) {
	f := newChatRestFixture(t)
	conversation := f.repo.seed(t, "Ana", "ana@example.com", nil)
	body := gin.H{"sender": "admin", "content": "hello"}
	path := fmt.Sprintf("/conversations/%d/messages", conversation.ID)

	anonymous := f.request(t, http.MethodPost, path, "", body)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	customer := f.request(t, http.MethodPost, path, f.token(t, identity.RoleCustomer), body)
	assert.Equal(t, http.StatusForbidden, customer.Code)
}

func TestAdminListsConversations(t *testing.T) {
	f := newChatRestFixture(t)
	f.repo.seed(t, "Ana", "ana@example.com", nil)
	f.repo.seed(t, "Bob", "bob@example.com", nil)

	rec := f.request(t, http.MethodGet, "/conversations", f.token(t, identity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	var list []ConversationSummaryResponse
	require.NoError(t, json.Unmarshal(mustMarshal(t, resp.Data), &list))
	assert.Len(t, list, 2)
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}
