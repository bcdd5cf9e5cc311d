package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
)

// FavoriteService handles a user's saved products
type FavoriteService struct {
	favorites catalog.FavoriteRepository
	products  catalog.ProductRepository
	logger    *zap.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favorites catalog.FavoriteRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		products:  products,
		logger:    logger,
	}
}

// List returns the user's favorites with their products
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]catalog.Favorite, error) {
	return s.favorites.FindByUser(ctx, userID)
}

// Add saves a product to the user's favorites. Adding a favorite twice is
// a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, productID int64) (*catalog.Favorite, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	favorite, err := catalog.NewFavorite(userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return favorite, nil
		}
		return nil, err
	}
	return favorite, nil
}

// Remove deletes a product from the user's favorites
func (s *FavoriteService) Remove(ctx context.Context, userID, productID int64) error {
	exists, err := s.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return s.favorites.Delete(ctx, userID, productID)
}

// Toggle flips a product's favorite state for the user, returning whether
// it is now a favorite
func (s *FavoriteService) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	exists, err := s.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.favorites.Delete(ctx, userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}
	if _, err := s.Add(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}
