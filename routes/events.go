package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/utils"
	"local-services-server/ws"
)

// BookingEvents upgrades to a websocket and subscribes the user to their
// booking events. Browsers cannot set headers on websocket requests, so the
// token travels as a query parameter.
func BookingEvents(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token required",
				"message": "Please provide a valid token in query parameters",
			})
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "User not found",
				"message": "User associated with token not found",
			})
			return
		}

		ws.Serve(hub, c.Writer, c.Request, user.ID)
	}
}
