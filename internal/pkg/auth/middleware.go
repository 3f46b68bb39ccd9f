package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by Middleware after a successful bearer check.
const (
	ContextUserIDKey = "authUserID"
	ContextRoleKey   = "authRole"
)

// Middleware guards REST endpoints with the same verifier the websocket
// handshake uses. It expects "Authorization: Bearer <token>" and stores
// the verified identity on the request context.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := v.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by Middleware.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
