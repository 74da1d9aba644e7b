package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/utils"
)

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token      string              `json:"token"`
	ExpiresIn  int64               `json:"expires_in"`
	User       models.UserResponse `json:"user"`
	RedirectTo string              `json:"redirect_to"`
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/register", register)
	router.POST("/login", login)
	router.POST("/logout", logout)
}

// RegisterAuthProtectedRoutes registers auth routes that need a session
func RegisterAuthProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", me)
}

// register creates a user plus its role-matching profile in one transaction
func register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"field":   "username",
			"message": "This username is already taken",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Location:     req.Location,
		PasswordHash: hashedPassword,
		Role:         models.UserRole(req.Role),
		IsActive:     true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch user.Role {
		case models.RoleWorker:
			profile := models.NewDefaultWorkerProfile(user, req.ServiceType)
			return tx.Create(&profile).Error
		case models.RoleCustomer:
			profile := models.NewDefaultCustomerProfile(user)
			return tx.Create(&profile).Error
		}
		return nil
	})
	if err != nil {
		// Unique violation means the pre-check raced with another signup
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation failed",
				"field":   "username",
				"message": "This username is already taken",
			})
			return
		}
		logging.Log.WithError(err).Error("user registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "User creation failed",
			"message": "Failed to create user account",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	logging.Log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created for " + user.Username,
		"data": AuthResponse{
			Token:      token,
			ExpiresIn:  24 * 60 * 60,
			User:       models.NewUserResponse(user),
			RedirectTo: redirectFor(user.Role),
		},
	})
}

// login authenticates a user and returns a token with a role-based redirect
func login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication failed",
			"message": "Invalid username or password",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Account deactivated",
			"message": "Your account has been deactivated",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication failed",
			"message": "Invalid username or password",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome " + user.Username,
		"data": AuthResponse{
			Token:      token,
			ExpiresIn:  24 * 60 * 60,
			User:       models.NewUserResponse(user),
			RedirectTo: redirectFor(user.Role),
		},
	})
}

// logout is informational for a stateless token session
func logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have been logged out.",
	})
}

// me returns the authenticated user
func me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication required",
			"message": "Please sign in first",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    models.NewUserResponse(user),
	})
}

// redirectFor names the dashboard a freshly authenticated user lands on
func redirectFor(role models.UserRole) string {
	switch role {
	case models.RoleWorker:
		return "worker-dashboard"
	case models.RoleAdmin:
		return "admin"
	default:
		return "customer-dashboard"
	}
}
