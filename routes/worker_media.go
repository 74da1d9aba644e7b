package routes

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"local-services-server/config"
	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/middleware"
)

// validateImageFile validates extension and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterWorkerMediaRoutes registers the profile picture upload endpoint
func RegisterWorkerMediaRoutes(router *gin.RouterGroup) {
	router.POST("/worker/profile/picture", uploadProfilePicture)
}

// uploadProfilePicture stores the worker's profile picture in Cloudinary and
// persists the returned URL on the profile.
func uploadProfilePicture(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	header, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": "No picture file provided",
		})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"message": "Picture must be a jpg, png or webp up to 5MB",
		})
		return
	}

	profile, err := getOrCreateWorkerProfile(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Upload unavailable",
			"message": "Media storage is not configured",
		})
		return
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		logging.Log.WithError(err).Error("cloudinary client init failed")
		respondError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	result, err := cld.Upload.Upload(c.Request.Context(), file, uploader.UploadParams{
		Folder:   "worker_profiles",
		PublicID: fmt.Sprintf("worker_%d_%d", profile.ID, time.Now().Unix()),
	})
	if err != nil {
		logging.Log.WithError(err).Error("profile picture upload failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Upload failed",
			"message": "Could not upload picture, please try again",
		})
		return
	}

	if err := database.DB.Model(&profile).Update("picture_url", result.SecureURL).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Profile picture updated.",
		"picture_url": result.SecureURL,
	})
}
