package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/types"
)

// RegisterAdminRoutes registers the administrative routes. Deleting a user
// requires superuser privilege; deleting a worker also accepts role=admin.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/admin/users", middleware.RequireAdminOrSuperuser(), listUsers)
	router.GET("/admin/stats", middleware.RequireAdminOrSuperuser(), dashboardStats)
	router.DELETE("/admin/users/:id", middleware.RequireSuperuser(), deleteUser)
	router.DELETE("/admin/workers/:id", middleware.RequireAdminOrSuperuser(), deleteWorker)
}

// deleteUserCascade removes a user together with everything hanging off it:
// profiles, bookings on either side, and feedback on those bookings.
func deleteUserCascade(tx *gorm.DB, userID uint) error {
	bookingIDs := tx.Model(&models.Booking{}).
		Select("id").
		Where("worker_id = ? OR customer_id = ?", userID, userID)
	if err := tx.Where("booking_id IN (?)", bookingIDs).Delete(&models.Feedback{}).Error; err != nil {
		return err
	}
	if err := tx.Where("worker_id = ? OR customer_id = ?", userID, userID).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.WorkerProfile{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.CustomerProfile{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, userID).Error
}

// deleteUser removes a user account. Superusers are never deletable; the
// refusal is a user-visible message, not a hard failure.
func deleteUser(c *gin.Context) {
	acting, _ := middleware.CurrentUser(c)

	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "user"})
			return
		}
		respondError(c, err)
		return
	}

	if user.IsSuperuser {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You cannot delete a superuser.",
		})
		return
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, user.ID)
	}); err != nil {
		logging.Log.WithError(err).Error("user deletion failed")
		respondError(c, err)
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"deleted_user_id": user.ID,
		"acting_user_id":  acting.ID,
	}).Info("user deleted")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully.",
	})
}

// deleteWorker removes a worker profile and its owning user together, with
// that user's bookings and feedback.
func deleteWorker(c *gin.Context) {
	acting, _ := middleware.CurrentUser(c)

	var profile models.WorkerProfile
	if err := database.DB.First(&profile, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "worker"})
			return
		}
		respondError(c, err)
		return
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, profile.UserID)
	}); err != nil {
		logging.Log.WithError(err).Error("worker deletion failed")
		respondError(c, err)
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"deleted_worker_id": profile.ID,
		"acting_user_id":    acting.ID,
	}).Info("worker deleted")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Worker deleted successfully.",
	})
}

// listUsers returns all user accounts
func listUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("id").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, models.NewUserResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   responses,
	})
}

// dashboardStats returns entity counts for the admin dashboard
func dashboardStats(c *gin.Context) {
	var stats struct {
		TotalUsers        int64 `json:"total_users"`
		TotalWorkers      int64 `json:"total_workers"`
		TotalCustomers    int64 `json:"total_customers"`
		TotalBookings     int64 `json:"total_bookings"`
		PendingBookings   int64 `json:"pending_bookings"`
		CompletedBookings int64 `json:"completed_bookings"`
		TotalFeedback     int64 `json:"total_feedback"`
	}

	database.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&stats.TotalWorkers)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&stats.TotalCustomers)
	database.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&stats.PendingBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted).Count(&stats.CompletedBookings)
	database.DB.Model(&models.Feedback{}).Count(&stats.TotalFeedback)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
