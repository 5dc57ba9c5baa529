package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

const CtxIdentityKey = "identity"

// IdentityResolver returns the identity bound to a session token.
type IdentityResolver interface {
	Current(ctx context.Context, token string) (entity.Identity, error)
}

// Session resolves the session cookie and stores the logged-in entity.Identity in
// the Gin context. Requests without a valid session continue anonymously.
func Session(sessions IdentityResolver, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := cookies.Token(c); token != "" {
			if id, err := sessions.Current(c.Request.Context(), token); err == nil {
				c.Set(CtxIdentityKey, id)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Session.
func CurrentIdentity(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}
