package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"socialpulse/handlers"
	"socialpulse/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "socialpulse API is running",
			"time":    time.Now().Unix(),
		})
	})

	// CORS for the Next.js dashboard
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Everything below needs a caller identity; tokens come from the
	// external identity service.
	api := router.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())

	// Posts
	api.POST("/posts", handlers.CreatePost)
	api.POST("/posts/bulk", handlers.BulkImportPosts)
	api.GET("/posts", handlers.ListPosts)
	api.GET("/posts/:id", handlers.GetPost)
	api.DELETE("/posts/:id", handlers.DeletePost)

	// Predictions
	api.POST("/predict", middleware.RateLimitMiddleware(), handlers.CreatePrediction)
	api.GET("/predictions", handlers.ListPredictions)
	api.PUT("/predictions/:id/actuals", handlers.AttachActuals)
	api.DELETE("/predictions/:id", handlers.DeletePrediction)

	// Analytics
	api.GET("/stats/media-types", handlers.StatsMediaTypes)
	api.GET("/stats/engagement", handlers.StatsEngagement)
	api.GET("/stats/days", handlers.StatsDays)
	api.GET("/stats/hours", handlers.StatsHours)
	api.GET("/stats/hashtags", handlers.StatsHashtags)
	api.GET("/stats/best-times", handlers.StatsBestTimes)
	api.GET("/stats/best-times/media-types", handlers.StatsBestTimesByMediaType)
	api.GET("/stats/accuracy", handlers.PredictionAccuracy)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
