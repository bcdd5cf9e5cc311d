package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Admin@Store.com", "Admin", "supersecret", RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, "admin@store.com", user.Email)
		assert.Equal(t, "Admin", user.Name)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "supersecret", user.PasswordHash)
		assert.True(t, user.CheckPassword("supersecret"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("a@b.com", "A", "short", RoleCustomer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with invalid role", func(t *testing.T) {
		_, err := NewUser("a@b.com", "A", "supersecret", Role("root"))
		require.Error(t, err)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser("  ", "A", "supersecret", RoleCustomer)
		require.Error(t, err)
	})
}

func TestUserRoleAndState(t *testing.T) {
	user, err := NewUser("a@b.com", "A", "supersecret", RoleCustomer)
	require.NoError(t, err)

	assert.False(t, user.IsAdmin())
	require.NoError(t, user.ChangeRole(RoleAdmin))
	assert.True(t, user.IsAdmin())
	require.Error(t, user.ChangeRole(Role("root")))

	user.Deactivate()
	assert.False(t, user.Active)
	user.Activate()
	assert.True(t, user.Active)
}
