package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/infrastructure/auth"
	"github.com/gomu/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware validates bearer tokens and enforces role requirements
type AuthMiddleware struct {
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthMiddleware creates the auth middleware. blacklist may be nil,
// which skips revocation checks.
func NewAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid, unrevoked access token
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		c.Set(JWTClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.authenticate(c); ok {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Admin privileges required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader(AuthHeaderKey)
	token, found := strings.CutPrefix(header, BearerPrefix)
	if !found || token == "" {
		return nil, false
	}

	claims, err := m.jwtService.ValidateAccessToken(token)
	if err != nil {
		m.logger.Debug("Token validation failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		return nil, false
	}

	if m.blacklist != nil && claims.ID != "" {
		revoked, err := m.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			// fail open: a blacklist outage must not lock everyone out
			m.logger.Error("Token blacklist check failed",
				zap.String("jti", claims.ID),
				zap.Error(err))
		} else if revoked {
			return nil, false
		}
	}

	return claims, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetClaims returns the validated claims set by RequireAuth or
// OptionalAuth, or nil for anonymous requests
func GetClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
