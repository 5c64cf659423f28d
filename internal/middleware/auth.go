package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasklog/internal/models"
	"tasklog/internal/session"
)

const principalKey = "principal"

// Session resolves the cookie into a principal and re-issues it with a
// fresh expiry window. A missing or invalid cookie is not an error here;
// route guards decide whether anonymous access is acceptable.
func Session(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal := sessions.Refresh(c); principal != nil {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Principal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if principal.Role != models.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated identity set by Session, or nil.
func Principal(c *gin.Context) *models.Principal {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := val.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
