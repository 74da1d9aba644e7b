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

// RegisterCustomerRoutes registers customer profile routes
func RegisterCustomerRoutes(router *gin.RouterGroup) {
	customerOnly := router.Group("", middleware.RequireRole(models.RoleCustomer))
	customerOnly.GET("/customer/dashboard", customerDashboard)
	customerOnly.PUT("/customer/profile", updateCustomerProfile)

	// Workers may look up the customer behind a booking
	router.GET("/customers/:id", middleware.RequireRole(models.RoleWorker), getCustomerProfile)
}

// getOrCreateCustomerProfile mirrors the worker-side repair path: profiles
// are provisioned at registration, a miss here is repaired and logged.
func getOrCreateCustomerProfile(user *models.User) (models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if err == nil {
		profile.User = *user
		return profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return profile, err
	}

	logging.Log.WithField("user_id", user.ID).Warn("customer profile missing, provisioning defaults")
	profile = models.NewDefaultCustomerProfile(*user)
	if err := database.DB.Create(&profile).Error; err != nil {
		return profile, err
	}
	profile.User = *user
	return profile, nil
}

// customerDashboard returns the customer's profile and their bookings
func customerDashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	profile, err := getOrCreateCustomerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Preload("Worker").
		Preload("Customer").
		Where("customer_id = ?", user.ID).
		Order("date DESC").
		Find(&bookings).Error; err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, models.NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"profile":  models.NewCustomerProfileResponse(profile),
		"bookings": responses,
	})
}

// updateCustomerProfile updates the profile's location and, matching the
// original behavior, the phone on both profile and user.
func updateCustomerProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CustomerProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	profile, err := getOrCreateCustomerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profile).Updates(map[string]interface{}{
			"location": req.Location,
			"phone":    req.Phone,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("phone", req.Phone).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully.",
	})
}

// getCustomerProfile lets a worker view a customer's profile
func getCustomerProfile(c *gin.Context) {
	var customer models.User
	if err := database.DB.Where("id = ? AND role = ?", c.Param("id"), models.RoleCustomer).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, &types.NotFoundError{Resource: "customer"})
			return
		}
		respondError(c, err)
		return
	}

	var profile models.CustomerProfile
	if err := database.DB.Where("user_id = ?", customer.ID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Profile may be missing for legacy accounts; the user view
			// still renders.
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"customer": models.NewUserResponse(customer),
				"profile":  nil,
			})
			return
		}
		respondError(c, err)
		return
	}
	profile.User = customer

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"customer": models.NewUserResponse(customer),
		"profile":  models.NewCustomerProfileResponse(profile),
	})
}
