package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/identity"
	"github.com/gomu/backend/internal/domain/shared"
)

// UserService handles admin-side account management
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// List returns every account
func (s *UserService) List(ctx context.Context) ([]identity.User, error) {
	return s.users.FindAll(ctx)
}

// Get returns a single account by id
func (s *UserService) Get(ctx context.Context, id int64) (*identity.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial update to an account
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := user.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := user.ChangeRole(identity.Role(*input.Role)); err != nil {
			return nil, err
		}
	}
	if input.Active != nil {
		if *input.Active {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Updated user", zap.Int64("user_id", user.ID))
	return user, nil
}

// Deactivate disables an account. Accounts are never hard-deleted so that
// sales and conversations keep their history; admins cannot deactivate
// themselves.
func (s *UserService) Deactivate(ctx context.Context, id, requesterID int64) (*identity.User, error) {
	if id == requesterID {
		return nil, shared.NewDomainError("SELF_DEACTIVATION", "You cannot deactivate your own account")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Deactivate()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Deactivated user", zap.Int64("user_id", user.ID))
	return user, nil
}
