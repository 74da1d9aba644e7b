package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/models"
)

// RequireRole rejects requests whose authenticated user does not hold one of
// the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please sign in first",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Permission denied",
			"message": "Your account role does not allow this action",
		})
		c.Abort()
	}
}

// RequireSuperuser rejects requests from non-superuser accounts
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsSuperuser {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Permission denied",
				"message": "Superuser privilege required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminOrSuperuser allows either a superuser or a role=admin account
func RequireAdminOrSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || (!user.IsSuperuser && !user.IsAdmin()) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Permission denied",
				"message": "Admin privilege required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
