package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/contentdesk/contentdesk/internal/identity"
)

const ContextKeyIdentity = "identity"

// IdentityMiddleware resolves the authenticated user's profile and
// privilege flags once per request. Resolution failure is absorbed by
// the resolver (nil profile, least privilege), so this middleware never
// aborts; a broken profile read must not lock a user out of the app.
func IdentityMiddleware(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := resolver.Resolve(c.Request.Context(), GetUserID(c), GetEmail(c))
		c.Set(ContextKeyIdentity, ident)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) identity.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return identity.Identity{UserID: GetUserID(c)}
	}
	ident, ok := val.(identity.Identity)
	if !ok {
		return identity.Identity{UserID: GetUserID(c)}
	}
	return ident
}
