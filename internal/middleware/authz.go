package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/authz"
)

// RequireRole gates a route group to the given roles. The 403 body is
// deliberately opaque: no detail on why the actor was rejected.
func RequireRole(allowed ...authz.Role) gin.HandlerFunc {
	allowedSet := map[authz.Role]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		s, _ := v.(string)
		role, ok := authz.ParseRole(s)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
