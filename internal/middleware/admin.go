package middleware

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user has an admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		r, _ := role.(string)
		if r != domain.RoleAdmin && r != domain.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
