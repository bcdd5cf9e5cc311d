package identity

import (
	"time"

	"github.com/gomu/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// LoginInput contains the input for login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is an authenticated user with a fresh token pair
type AuthResult struct {
	User                  *identity.User
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// RefreshResult is a new token pair minted from a refresh token
type RefreshResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// UserUpdateInput carries partial admin updates to an account
type UserUpdateInput struct {
	Name   *string
	Role   *string
	Active *bool
}
