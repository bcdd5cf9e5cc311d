package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/identity"
	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/infrastructure/auth"
	"github.com/gomu/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})
}

func newAuthService(t *testing.T) (*AuthService, *MockUserRepository, *auth.InMemoryTokenBlacklist) {
	t.Helper()
	users := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(users, testJWTService(), blacklist, zap.NewNop())
	return service, users, blacklist
}

func activeUser(t *testing.T, id int64, email, password string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "Ana", password, role)
	require.NoError(t, err)
	user.ID = id
	return user
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	service, users, _ := newAuthService(t)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.Email == "ana@x.com" && u.Role == identity.RoleCustomer
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*identity.User).ID = 4
	}).Return(nil)

	result, err := service.Register(context.Background(), RegisterInput{
		Email:    " Ana@X.com ",
		Name:     "Ana",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, users, _ := newAuthService(t)

	users.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "ana@x.com",
		Name:     "Ana",
		Password: "password123",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestLogin(t *testing.T) {
	service, users, _ := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleAdmin)

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)

	result, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user, result.User)

	claims, err := testJWTService().ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.True(t, claims.IsAdmin())
}

func TestLoginWrongPassword(t *testing.T) {
	service, users, _ := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleCustomer)

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)

	_, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "wrong-password"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginUnknownEmailDoesNotLeakExistence(t *testing.T) {
	service, users, _ := newAuthService(t)

	users.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, shared.ErrNotFound)

	_, err := service.Login(context.Background(), LoginInput{Email: "ghost@x.com", Password: "whatever1"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	service, users, _ := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleCustomer)
	user.Deactivate()

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)

	_, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "password123"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	service, users, blacklist := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleCustomer)

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)
	users.On("FindByID", mock.Anything, int64(1)).Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The original refresh token was rotated out and cannot be replayed
	oldClaims, err := testJWTService().ValidateRefreshToken(login.RefreshToken)
	require.NoError(t, err)
	revoked, err := blacklist.IsBlacklisted(context.Background(), oldClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = service.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, users, _ := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleCustomer)

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), login.AccessToken)
	assert.Error(t, err)
}

func TestLogoutBlacklistsTokens(t *testing.T) {
	service, users, blacklist := newAuthService(t)
	user := activeUser(t, 1, "ana@x.com", "password123", identity.RoleCustomer)

	users.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := testJWTService().ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims, login.RefreshToken))

	revoked, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	refreshClaims, err := testJWTService().ValidateRefreshToken(login.RefreshToken)
	require.NoError(t, err)
	revoked, err = blacklist.IsBlacklisted(context.Background(), refreshClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
