package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/mailer"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/types"
	"local-services-server/workflow"
	"local-services-server/ws"
)

var (
	bookingMailer *mailer.Mailer
	eventHub      *ws.Hub
)

// Init wires the notification collaborators used by the booking handlers
func Init(m *mailer.Mailer, hub *ws.Hub) {
	bookingMailer = m
	eventHub = hub
}

// RegisterBookingRoutes registers booking routes. Role gating is done per
// handler because workers and customers share the same group.
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("/bookings", middleware.RequireRole(models.RoleCustomer), createBooking)
	router.POST("/bookings/:id/accept", middleware.RequireRole(models.RoleWorker), acceptBooking)
	router.POST("/bookings/:id/reject", middleware.RequireRole(models.RoleWorker), rejectBooking)
	router.POST("/bookings/:id/complete", middleware.RequireRole(models.RoleWorker), completeBooking)
	router.POST("/bookings/:id/cancel", middleware.RequireRole(models.RoleCustomer), cancelBooking)
	router.GET("/bookings/:id", getBooking)
}

// createBooking inserts a pending booking for the acting customer against a
// worker profile, then notifies the worker. Notification failure downgrades
// the success message to a warning; the booking itself is already committed
// and is never rolled back.
func createBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var profile models.WorkerProfile
	if err := database.DB.Preload("User").First(&profile, req.WorkerProfileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "worker"})
			return
		}
		respondError(c, err)
		return
	}

	if profile.UserID == user.ID {
		respondError(c, &types.ValidationError{Field: "worker_profile_id", Message: "you cannot book yourself"})
		return
	}

	booking := models.Booking{
		WorkerID:   profile.UserID,
		CustomerID: user.ID,
		Service:    req.Service,
		Date:       req.Date,
		Status:     models.BookingStatusPending,
		Notes:      req.Notes,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		logging.Log.WithError(err).Error("booking creation failed")
		respondError(c, err)
		return
	}
	booking.Worker = profile.User
	booking.Customer = user

	message := "Booking created and email notification sent."
	var warning string
	if err := bookingMailer.NotifyBookingCreated(&profile.User, &user, &booking); err != nil {
		logging.Log.WithError(err).WithField("booking_id", booking.ID).Error("booking notification failed")
		message = "Booking created, but email could not be sent."
		warning = "email notification failed"
	}

	if eventHub != nil {
		eventHub.SendToUser(profile.UserID, &ws.Event{
			Type:      "booking_created",
			Timestamp: time.Now(),
			Data:      models.NewBookingResponse(booking),
		})
	}

	resp := gin.H{
		"success": true,
		"message": message,
		"booking": models.NewBookingResponse(booking),
	}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

// transitionBooking runs one workflow action with an atomic check-and-set so
// concurrent transitions on the same booking cannot both win.
func transitionBooking(c *gin.Context, action workflow.Action, successMessage string) {
	user, _ := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.First(&booking, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "booking"})
			return
		}
		respondError(c, err)
		return
	}

	next, err := workflow.Apply(&booking, &user, action)
	if errors.Is(err, workflow.ErrAlreadyCancelled) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"info":    true,
			"message": "This booking is already cancelled.",
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	res := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Update("status", next)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, &types.InvalidStateError{Message: "booking status changed concurrently, please retry"})
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"booking_id": booking.ID,
		"from":       booking.Status,
		"to":         next,
		"user_id":    user.ID,
	}).Info("booking status changed")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": successMessage,
		"status":  next,
	})
}

func acceptBooking(c *gin.Context) {
	transitionBooking(c, workflow.ActionAccept, "Booking accepted successfully.")
}

func rejectBooking(c *gin.Context) {
	transitionBooking(c, workflow.ActionReject, "Booking rejected.")
}

func completeBooking(c *gin.Context) {
	transitionBooking(c, workflow.ActionComplete, "Booking marked as completed.")
}

func cancelBooking(c *gin.Context) {
	transitionBooking(c, workflow.ActionCancel, "Your booking has been cancelled.")
}

// getBooking returns one booking, visible only to its two parties or admins
func getBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var booking models.Booking
	if err := database.DB.Preload("Worker").Preload("Customer").First(&booking, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "booking"})
			return
		}
		respondError(c, err)
		return
	}

	if booking.WorkerID != user.ID && booking.CustomerID != user.ID && !user.IsAdmin() && !user.IsSuperuser {
		respondError(c, &types.NotFoundError{Resource: "booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": models.NewBookingResponse(booking),
	})
}
