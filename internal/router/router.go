package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/assets"
	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/handlers"
	"github.com/DaniilChichenkov/abik/internal/middleware"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/services"
)

func Setup(db *gorm.DB, cfg *config.Config, assetManager *assets.Manager) *gin.Engine {
	// Initialize Services
	searchService := services.NewSearchService(cfg)
	activityService := services.NewActivityService(db)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		logrus.Warnf("Failed to initialize rate limiter: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// Static asset mounts; files land here through the asset manager
	r.Static(cfg.GalleryRoute, cfg.GalleryRoot)
	r.Static(cfg.ServicesRoute, cfg.ServicesRoot)

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Public routes
		api.POST("/auth/login", handlers.Login(db, cfg))

		api.GET("/gallery", handlers.ListCategories(db, models.KindGallery))
		api.GET("/gallery/:id", handlers.GetGalleryCategory(db, assetManager))
		api.GET("/services", handlers.ListCategories(db, models.KindService))
		api.GET("/contact", handlers.GetContactInfo(db))

		// Public form posts, rate limited when Redis is around
		createRequest := api.Group("")
		createFeedback := api.Group("")
		if rateLimiter != nil {
			createRequest.Use(rateLimiter.RateLimitByIP(10, 3600))
			createFeedback.Use(rateLimiter.RateLimitByIP(10, 3600))
		}
		createRequest.POST("/requests", handlers.CreateServiceRequest(db, searchService))
		createFeedback.POST("/feedback", handlers.CreateFeedback(db))

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
		{
			admin.GET("/auth/me", handlers.GetCurrentUser(db))

			// Gallery management
			admin.POST("/gallery", handlers.CreateCategory(db, assetManager, activityService, models.KindGallery))
			admin.PUT("/gallery/:id", handlers.RenameCategory(db, activityService, models.KindGallery))
			admin.DELETE("/gallery/:id", handlers.DeleteCategory(db, assetManager, searchService, activityService, models.KindGallery))
			admin.POST("/gallery/:id/images", handlers.UploadGalleryImages(db, assetManager, activityService))
			admin.DELETE("/gallery/:id/images/:image", handlers.DeleteGalleryImage(db, assetManager, activityService))

			// Service management
			admin.POST("/services", handlers.CreateCategory(db, assetManager, activityService, models.KindService))
			admin.PUT("/services/:id", handlers.RenameCategory(db, activityService, models.KindService))
			admin.DELETE("/services/:id", handlers.DeleteCategory(db, assetManager, searchService, activityService, models.KindService))
			admin.POST("/services/:id/items", handlers.CreateServiceItem(db, assetManager, searchService))
			admin.PUT("/services/:id/items/:itemId", handlers.UpdateServiceItem(db, assetManager, searchService, activityService))
			admin.DELETE("/services/:id/items/:itemId", handlers.DeleteServiceItem(db, assetManager, searchService))

			// Incoming requests
			admin.GET("/requests", handlers.ListServiceRequests(db))
			admin.GET("/requests/pending-count", handlers.CountPendingRequests(db))
			admin.PUT("/requests/:id/complete", handlers.CompleteServiceRequest(db, searchService, activityService))
			admin.DELETE("/requests/:id", handlers.DeleteServiceRequest(db, searchService))

			// Feedback
			admin.GET("/feedback", handlers.ListFeedback(db))
			admin.PUT("/feedback/:id/red", handlers.MarkFeedbackRed(db))
			admin.DELETE("/feedback/:id", handlers.DeleteFeedback(db))

			// Contact info
			admin.PUT("/contact", handlers.UpdateContactInfo(db))

			// Search + audit trail
			admin.GET("/search", handlers.Search(searchService))
			admin.GET("/activities/recent", handlers.GetRecentActivities(activityService))
		}
	}

	return r
}
