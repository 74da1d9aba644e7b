package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"local-services-server/config"
	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/mailer"
	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/routes"
	"local-services-server/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Fall back to system environment variables
	}

	config.Load()
	logging.Init(config.AppConfig.Server.GinMode)

	if err := database.Initialize(); err != nil {
		logging.Log.WithError(err).Fatal("failed to initialize database")
	}

	if err := seedAdminUser(); err != nil {
		logging.Log.WithError(err).Fatal("failed to seed admin user")
	}

	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Local Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Live booking event feed
	hub := ws.NewHub()
	go hub.Run()

	routes.Init(mailer.New(config.AppConfig.SMTP), hub)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit())
	{
		// Public routes, with a stricter budget on credential endpoints
		routes.RegisterAuthRoutes(api.Group("/auth", middleware.AuthRateLimit()))
		routes.RegisterSearchRoutes(api)
		api.GET("/ws/events", routes.BookingEvents(hub))

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterAuthProtectedRoutes(protected)
			routes.RegisterCustomerRoutes(protected)
			routes.RegisterBookingRoutes(protected)
			routes.RegisterFeedbackRoutes(protected)
			routes.RegisterAdminRoutes(protected)

			workerOnly := protected.Group("", middleware.RequireRole(models.RoleWorker))
			routes.RegisterWorkerRoutes(workerOnly)
			routes.RegisterWorkerMediaRoutes(workerOnly)
		}
	}

	port := config.AppConfig.Server.Port
	logging.Log.WithField("port", port).Info("server starting")
	if err := router.Run("0.0.0.0:" + port); err != nil {
		logging.Log.WithError(err).Fatal("failed to start server")
	}
}
