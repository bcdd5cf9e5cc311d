package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewConversation(t *testing.T) {
	t.Run("creates conversation with valid inputs", func(t *testing.T) {
		conversation, err := NewConversation("Ana García", "ana@example.com", nil)
		require.NoError(t, err)
		require.NotNil(t, conversation)

		assert.Equal(t, "Ana García", conversation.CustomerName)
		assert.Equal(t, "ana@example.com", conversation.CustomerEmail)
		assert.Nil(t, conversation.OrderNumber)
		assert.Nil(t, conversation.SaleID)
		assert.Equal(t, "", conversation.OrderKey)
		assert.False(t, conversation.CreatedAt.IsZero())
	})

	t.Run("normalizes email to lowercase and trims", func(t *testing.T) {
		conversation, err := NewConversation("Ana", "  Ana@Example.COM ", nil)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", conversation.CustomerEmail)
	})

	t.Run("trims customer name", func(t *testing.T) {
		conversation, err := NewConversation("  Ana  ", "ana@example.com", nil)
		require.NoError(t, err)
		assert.Equal(t, "Ana", conversation.CustomerName)
	})

	t.Run("trims order number and derives order key", func(t *testing.T) {
		conversation, err := NewConversation("Ana", "ana@example.com", strPtr(" ORD-1700000000000-1234 "))
		require.NoError(t, err)
		require.NotNil(t, conversation.OrderNumber)
		assert.Equal(t, "ORD-1700000000000-1234", *conversation.OrderNumber)
		assert.Equal(t, "ORD-1700000000000-1234", conversation.OrderKey)
	})

	t.Run("treats blank order number as absent", func(t *testing.T) {
		conversation, err := NewConversation("Ana", "ana@example.com", strPtr("   "))
		require.NoError(t, err)
		assert.Nil(t, conversation.OrderNumber)
		assert.Equal(t, "", conversation.OrderKey)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewConversation("   ", "ana@example.com", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewConversation("Ana", "  ", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email cannot be empty")
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		for _, email := range []string{"ana", "@example.com", "ana@", "a@b@c"} {
			_, err := NewConversation("Ana", email, nil)
			require.Error(t, err, email)
		}
	})
}

func TestConversationBelongsTo(t *testing.T) {
	conversation, err := NewConversation("Ana", "ana@example.com", nil)
	require.NoError(t, err)

	assert.True(t, conversation.BelongsTo("ana@example.com"))
	assert.True(t, conversation.BelongsTo("  ANA@Example.com "))
	assert.False(t, conversation.BelongsTo("other@example.com"))
	assert.False(t, conversation.BelongsTo(""))
}

func TestConversationLinkSale(t *testing.T) {
	conversation, err := NewConversation("Ana", "ana@example.com", strPtr("ORD-1"))
	require.NoError(t, err)

	conversation.LinkSale(42)
	require.NotNil(t, conversation.SaleID)
	assert.Equal(t, int64(42), *conversation.SaleID)
}

func TestConversationRecordMessageTime(t *testing.T) {
	conversation, err := NewConversation("Ana", "ana@example.com", nil)
	require.NoError(t, err)

	at := time.Now().Add(time.Minute)
	conversation.RecordMessageTime(at)
	assert.Equal(t, at, conversation.UpdatedAt)
}

func TestNormalizeOrderNumber(t *testing.T) {
	assert.Nil(t, NormalizeOrderNumber(nil))
	assert.Nil(t, NormalizeOrderNumber(strPtr("")))
	assert.Nil(t, NormalizeOrderNumber(strPtr("   ")))

	normalized := NormalizeOrderNumber(strPtr(" ORD-9 "))
	require.NotNil(t, normalized)
	assert.Equal(t, "ORD-9", *normalized)
}
