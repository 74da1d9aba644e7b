package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/middleware"
	"local-services-server/models"
)

// RegisterWorkerRoutes registers worker profile routes on a group that
// already requires an authenticated worker.
func RegisterWorkerRoutes(router *gin.RouterGroup) {
	router.GET("/worker/profile", getMyWorkerProfile)
	router.PUT("/worker/profile", updateWorkerProfile)
	router.PATCH("/worker/availability", setAvailability)
	router.DELETE("/worker/profile", deleteWorkerProfile)
	router.GET("/worker/dashboard", workerDashboard)
}

// getOrCreateWorkerProfile returns the worker's profile, provisioning one
// with defaults if it is missing. Profiles are normally created at
// registration, so a miss here is repaired and logged.
func getOrCreateWorkerProfile(user *models.User) (models.WorkerProfile, error) {
	var profile models.WorkerProfile
	err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if err == nil {
		profile.User = *user
		return profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return profile, err
	}

	logging.Log.WithField("user_id", user.ID).Warn("worker profile missing, provisioning defaults")
	profile = models.NewDefaultWorkerProfile(*user, "")
	if err := database.DB.Create(&profile).Error; err != nil {
		return profile, err
	}
	profile.User = *user
	return profile, nil
}

func getMyWorkerProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	profile, err := getOrCreateWorkerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	avg, err := workerAvgRating(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": models.NewWorkerProfileResponse(profile, avg),
	})
}

func updateWorkerProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.WorkerProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	profile, err := getOrCreateWorkerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	profile.ServiceType = req.ServiceType
	profile.ExperienceYears = req.ExperienceYears
	profile.HourlyRate = req.HourlyRate
	profile.Location = req.Location
	if req.Status != "" {
		profile.Status = models.WorkerStatus(req.Status)
	}

	if err := database.DB.Omit("User").Save(&profile).Error; err != nil {
		logging.Log.WithError(err).Error("worker profile update failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully.",
		"profile": models.NewWorkerProfileResponse(profile, nil),
	})
}

// setAvailability updates only the worker's status. Any status may follow any
// other; availability is not a constrained transition.
func setAvailability(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	profile, err := getOrCreateWorkerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Model(&profile).Update("status", req.Status).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated to " + req.Status,
	})
}

// deleteWorkerProfile removes the worker's profile; the user account stays.
func deleteWorkerProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var profile models.WorkerProfile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Not found",
				"message": "You don't have a profile to delete.",
			})
			return
		}
		respondError(c, err)
		return
	}

	if err := database.DB.Delete(&profile).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your profile has been deleted.",
	})
}

// workerDashboard returns the worker's profile and their bookings, newest
// first.
func workerDashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	profile, err := getOrCreateWorkerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Preload("Customer").
		Preload("Worker").
		Where("worker_id = ?", user.ID).
		Order("date DESC").
		Find(&bookings).Error; err != nil {
		respondError(c, err)
		return
	}

	avg, err := workerAvgRating(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, models.NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"profile":  models.NewWorkerProfileResponse(profile, avg),
		"bookings": responses,
	})
}
