package middleware

import (
	"net/http"
	"strings"

	"resource-portal/internal/config"
	"resource-portal/internal/models"
	"resource-portal/internal/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and stores the viewer identity in the
// request context.
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := utils.ParseToken(tokenString, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// ViewerID returns the authenticated user's id from the request context.
func ViewerID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	s, _ := id.(string)
	return s
}

// IsAdmin reports whether the authenticated viewer has the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return s == models.RoleAdmin
}
