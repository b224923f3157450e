// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marketloop/recommendation-service/internal/config"
	"github.com/marketloop/recommendation-service/internal/handlers"
	"github.com/marketloop/recommendation-service/internal/middleware"
	"github.com/marketloop/recommendation-service/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	viewService := services.NewViewService(db)
	recommendationService := services.NewRecommendationService(db, cfg.Recommendation)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, viewService, cfg.Recommendation)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", healthHandler.Health)

	// API routes
	api := r.Group("/api")
	{
		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("/views", recommendationHandler.RecordView)
			recommendations.GET("/user/:user_id", recommendationHandler.GetRecommendations)
			recommendations.GET("/similar/:product_id", recommendationHandler.GetSimilarProducts)
			recommendations.GET("/popular", recommendationHandler.GetPopularProducts)
			recommendations.GET("/frequently-viewed/:user_id", recommendationHandler.GetFrequentlyViewed)
		}
	}

	return r
}
