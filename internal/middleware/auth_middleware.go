package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
)

const userIDKey = "userID"

// TokenValidator resolves a bearer token to a user id
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (uint, error)
}

// AuthMiddleware handles JWT validation
type AuthMiddleware struct {
	tokens TokenValidator
	logger *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(tokens TokenValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// RequireAuth validates the bearer token and stores the user id in the context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "authorization header required"))
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "invalid authorization header format"))
			return
		}

		userID, err := m.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "invalid or expired token"))
			return
		}

		c.Set(userIDKey, userID)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", userID)

		c.Next()
	}
}

// UserID returns the user id stored by RequireAuth
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
