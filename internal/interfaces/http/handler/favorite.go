package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
	"github.com/gomu/backend/internal/interfaces/http/middleware"
)

// FavoriteHandler handles the signed-in customer's favorites
type FavoriteHandler struct {
	BaseHandler
	favoriteService *catalogapp.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService *catalogapp.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// FavoriteResponse represents a favorite in responses
type FavoriteResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		out = append(out, FavoriteResponse{
			ID:        favorite.ID,
			ProductID: favorite.ProductID,
			CreatedAt: favorite.CreatedAt,
		})
	}
	h.Success(c, out)
}

// Add handles POST /favorites/:productId. Adding an existing favorite is
// idempotent.
func (h *FavoriteHandler) Add(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	favorite, err := h.favoriteService.Add(c.Request.Context(), claims.UserID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, FavoriteResponse{
		ID:        favorite.ID,
		ProductID: favorite.ProductID,
		CreatedAt: favorite.CreatedAt,
	})
}

// Remove handles DELETE /favorites/:productId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), claims.UserID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Toggle handles POST /favorites/:productId/toggle, returning whether the
// product ended up favorited
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	favorited, err := h.favoriteService.Toggle(c.Request.Context(), claims.UserID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "favorited": favorited})
}
