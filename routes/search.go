package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

// RegisterSearchRoutes registers the public worker listing routes
func RegisterSearchRoutes(router *gin.RouterGroup) {
	router.GET("/workers", searchWorkers)
	router.GET("/workers/:id", getWorker)
}

// likePattern wraps a query for a case-insensitive contains match
func likePattern(query string) string {
	return "%" + query + "%"
}

// avgRatingRow carries one worker's mean feedback rating
type avgRatingRow struct {
	WorkerID  uint    `gorm:"column:worker_id"`
	AvgRating float64 `gorm:"column:avg_rating"`
}

// avgRatingsByWorker computes the mean feedback rating per worker user id,
// across all feedback reachable through that worker's bookings. Workers with
// no feedback are simply absent from the map.
func avgRatingsByWorker() (map[uint]float64, error) {
	var rows []avgRatingRow
	err := database.DB.Model(&models.Feedback{}).
		Select("bookings.worker_id AS worker_id, AVG(feedback.rating) AS avg_rating").
		Joins("JOIN bookings ON bookings.id = feedback.booking_id").
		Group("bookings.worker_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[uint]float64, len(rows))
	for _, row := range rows {
		ratings[row.WorkerID] = row.AvgRating
	}
	return ratings, nil
}

// workerAvgRating returns a single worker's mean rating, nil when the worker
// has no feedback yet.
func workerAvgRating(workerUserID uint) (*float64, error) {
	var rows []avgRatingRow
	err := database.DB.Model(&models.Feedback{}).
		Select("bookings.worker_id AS worker_id, AVG(feedback.rating) AS avg_rating").
		Joins("JOIN bookings ON bookings.id = feedback.booking_id").
		Where("bookings.worker_id = ?", workerUserID).
		Group("bookings.worker_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	avg := rows[0].AvgRating
	return &avg, nil
}

// buildWorkerResults decorates profiles with their average rating. A worker
// absent from ratings gets a null average, never zero.
func buildWorkerResults(profiles []models.WorkerProfile, ratings map[uint]float64) []models.WorkerProfileResponse {
	results := make([]models.WorkerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		var avg *float64
		if r, ok := ratings[p.UserID]; ok {
			v := r
			avg = &v
		}
		results = append(results, models.NewWorkerProfileResponse(p, avg))
	}
	return results
}

// searchWorkers lists worker profiles, optionally filtered by a free-text
// query matched against username, service type, or location.
func searchWorkers(c *gin.Context) {
	query := c.Query("q")

	db := database.DB.
		Preload("User").
		Joins("JOIN users ON users.id = worker_profiles.user_id")

	if query != "" {
		pattern := likePattern(query)
		db = db.Where(
			"users.username ILIKE ? OR worker_profiles.service_type ILIKE ? OR worker_profiles.location ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var profiles []models.WorkerProfile
	if err := db.Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}

	ratings, err := avgRatingsByWorker()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"workers": buildWorkerResults(profiles, ratings),
	})
}

// getWorker returns a single worker profile with its owning user
func getWorker(c *gin.Context) {
	var profile models.WorkerProfile
	if err := database.DB.Preload("User").First(&profile, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Not found",
				"message": "worker not found",
			})
			return
		}
		respondError(c, err)
		return
	}

	avg, err := workerAvgRating(profile.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"worker":  models.NewWorkerProfileResponse(profile, avg),
	})
}
