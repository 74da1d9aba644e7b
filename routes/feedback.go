package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"local-services-server/database"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/types"
)

// RegisterFeedbackRoutes registers feedback routes
func RegisterFeedbackRoutes(router *gin.RouterGroup) {
	router.POST("/bookings/:id/feedback", middleware.RequireRole(models.RoleCustomer), submitFeedback)
	router.GET("/bookings/:id/feedback", getFeedback)
}

// feedbackUpsertClause makes Create overwrite the booking's existing feedback
// row instead of tripping the booking_id unique index, so two concurrent
// first submissions both land on one row.
func feedbackUpsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}
}

// submitFeedback upserts the single feedback row for a booking owned by the
// acting customer. Resubmitting overwrites rating and comment.
func submitFeedback(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	if err := database.DB.Where("id = ? AND customer_id = ?", c.Param("id"), user.ID).First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "booking"})
			return
		}
		respondError(c, err)
		return
	}

	feedback := models.Feedback{
		BookingID: booking.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := database.DB.Clauses(feedbackUpsertClause()).Create(&feedback).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Feedback submitted successfully.",
		"feedback": gin.H{"id": feedback.ID, "rating": feedback.Rating, "comment": feedback.Comment},
	})
}

// getFeedback returns a booking's feedback with its nested booking view,
// visible to the two parties of the booking.
func getFeedback(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var feedback models.Feedback
	err := database.DB.
		Preload("Booking").
		Preload("Booking.Worker").
		Preload("Booking.Customer").
		Where("booking_id = ?", c.Param("id")).
		First(&feedback).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "feedback"})
			return
		}
		respondError(c, err)
		return
	}

	if feedback.Booking.WorkerID != user.ID && feedback.Booking.CustomerID != user.ID &&
		!user.IsAdmin() && !user.IsSuperuser {
		respondError(c, &types.NotFoundError{Resource: "feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"feedback": models.NewFeedbackResponse(feedback),
	})
}
