package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contentdesk/contentdesk/internal/auth"
)

// Context keys for the claims AuthMiddleware stores per request.
// Constants rather than inline strings so a typo fails at compile time
// in handlers, not silently at runtime.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "email"
	ContextKeyTokenID   = "token_id"
	ContextKeyExpiresAt = "expires_at"
)

// TokenRevoker is what the middleware needs from the sign-out denylist.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware validates the bearer token and rejects revoked ones.
// revoker may be nil, in which case sign-out falls back to client-side
// token disposal only.
func AuthMiddleware(secret string, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				// Denylist unavailable: fail closed. A transient Redis
				// outage must not readmit signed-out sessions.
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "authorization temporarily unavailable",
				})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "token has been revoked",
				})
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyTokenID, claims.TokenID)
		if claims.ExpiresAt != nil {
			c.Set(ContextKeyExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetEmail(c *gin.Context) string {
	val, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	email, ok := val.(string)
	if !ok {
		return ""
	}
	return email
}

func GetTokenID(c *gin.Context) string {
	val, exists := c.Get(ContextKeyTokenID)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

func GetExpiresAt(c *gin.Context) time.Time {
	val, exists := c.Get(ContextKeyExpiresAt)
	if !exists {
		return time.Time{}
	}
	t, ok := val.(time.Time)
	if !ok {
		return time.Time{}
	}
	return t
}
