package realtime

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/infrastructure/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Browser clients connect from the storefront and the admin panel;
	// room access is enforced per conversation after the upgrade.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades HTTP requests to chat websocket connections.
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

func NewHandler(hub *Hub, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Serve handles GET /ws/chat. Identity is resolved once here, from a token
// in the query string or Authorization header. A valid admin token makes the
// connection an admin connection; anything else produces an anonymous
// customer connection that must prove conversation ownership per join.
func (h *Handler) Serve(c *gin.Context) {
	isAdmin, userID := h.identify(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Chat websocket upgrade failed", zap.Error(err))
		return
	}

	h.logger.Debug("Chat connection established",
		zap.Bool("is_admin", isAdmin),
		zap.Int64("user_id", userID))

	NewClient(h.hub, conn, isAdmin, userID, h.logger).Run()
}

// identify extracts and validates a bearer token. Invalid or revoked tokens
// downgrade the connection to anonymous rather than rejecting it, since
// customers connect without accounts.
func (h *Handler) identify(c *gin.Context) (isAdmin bool, userID int64) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			token = after
		}
	}
	if token == "" {
		return false, 0
	}

	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		h.logger.Debug("Chat connection token rejected", zap.Error(err))
		return false, 0
	}

	revoked, err := h.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
	if err != nil {
		h.logger.Error("Token blacklist check failed", zap.Error(err))
		return false, 0
	}
	if revoked {
		return false, 0
	}

	return claims.IsAdmin(), claims.UserID
}
